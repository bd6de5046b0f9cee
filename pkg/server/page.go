package server

const pageStyle = `body{font-family:system-ui,sans-serif;margin:2rem}` +
	`.uploadkit-controls{margin-bottom:1rem}` +
	`.uploadkit-controls button{margin-right:.5rem}` +
	`img{margin:.25rem;border-radius:4px}`

// pageScript connects to the hub, forwards button clicks as commands and
// turns events back into window events. Toasts are shown with alert.
const pageScript = `(function(){
var proto = location.protocol === "https:" ? "wss://" : "ws://";
var ws = new WebSocket(proto + location.host + "` + WebSocketPath + `");
function send(action){ if (ws.readyState === 1) ws.send(JSON.stringify({action: action})); }
document.addEventListener("click", function(e){
  var id = e.target && e.target.id;
  if (id === "` + OpenButtonID + `") send("open");
  if (id === "` + SubmitButtonID + `") send("submit");
});
ws.onmessage = function(m){
  var msg = JSON.parse(m.data);
  if (msg.event === "` + RefreshEvent + `") { location.reload(); return; }
  window.dispatchEvent(new CustomEvent(msg.event, {detail: msg.detail}));
};
window.addEventListener("uploadkit:toast", function(e){ alert(e.detail.message); });
})();`
