// Package config loads uploadkit configuration.
//
// Configuration lives in uploadkit.json, uploadkit.toml or uploadkit.yaml
// (first found wins). Fields tagged with `env` can be overridden from the
// environment, for example UPLOADKIT_ENDPOINT or UPLOADKIT_S3_BUCKET.
//
// # Configuration File Structure
//
//	{
//	  "widget": {
//	    "container": "#uploader",
//	    "previewContainer": "#previews",
//	    "allowMultiple": true,
//	    "filesFieldName": "files",
//	    "acceptedTypes": ["image/*", ".pdf"],
//	    "endpointUrl": "https://example.com/upload",
//	    "extraFields": {"album": "summer"}
//	  },
//	  "source": {"dir": "./photos", "maxSize": 10485760},
//	  "s3": {"bucket": "uploads", "prefix": "incoming/"},
//	  "serve": {"host": "localhost", "port": 8080},
//	  "log": {"level": "info", "format": "text"}
//	}
//
// # Usage
//
//	cfg, err := config.Discover(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Endpoint:", cfg.Widget.EndpointURL)
package config
