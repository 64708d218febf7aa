// Package config provides configuration parsing for qszone.
//
// The configuration is stored in qszone.json (or qszone.yaml) and describes
// the HTTP server and the named zones links can be placed in.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "addr": ":8080",
//	    "allowedOrigins": ["https://app.example.com"]
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "qszone"
//	  },
//	  "tracing": {
//	    "tracerName": "qszone"
//	  },
//	  "zones": [
//	    {"name": "results", "nullKeys": ["page"]},
//	    {"name": "demo", "defaultKeys": ["A", "B", "C"], "defaultValue": "default"}
//	  ]
//	}
//
// # Usage
//
//	cfg, err := config.LoadFile("qszone.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	zones := cfg.Registry()
package config
