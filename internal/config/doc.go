// Package config loads snowgo's runtime configuration.
//
// Configuration comes from a YAML file, optionally preceded by a .env file,
// and is then overridden by SNOWGO_* environment variables:
//
//	detector:
//	  resource: "resources/common.res"
//	  models: ["resources/models/snowboy.umdl"]
//	  sensitivity: "0.5"
//	  audio_gain: 1.0
//	  apply_frontend: false
//	library:
//	  path: ""            # explicit library file; empty searches
//	  dir: ""             # extra directory to search first
//	audio:
//	  sample_rate: 16000
//	  frame_size: 2048
//	  device: -1          # -1 = default input device
//	  cooldown_ms: 1000
//	logging:
//	  level: "info"       # debug, info, warn, error
//	  format: "text"      # json, text
//	  output: "stderr"    # stdout, stderr
//	mqtt:
//	  enabled: false
//	  broker: "tcp://localhost:1883"
//	  topic: "snowgo/detections"
//	tracing:
//	  exporter: "none"    # none, stdout
package config
