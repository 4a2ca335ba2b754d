// Command test-tool seeds a directory with sample OpenAPI documents so a
// specdock daemon has something to serve during end-to-end runs.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

var samples = map[string]string{
	"weather-openapi.yaml": `openapi: 3.0.0
info:
  title: Weather API
  version: 1.2.0
  description: Current weather conditions and forecasts for any location.
servers:
  - url: https://api.weather.example
paths:
  /current:
    get:
      operationId: getCurrentWeather
      summary: Get current weather conditions
      responses:
        "200":
          description: Current conditions
`,
	"echo-openapi.json": `{
  "openapi": "3.0.0",
  "info": {
    "title": "Echo API",
    "version": "0.1.0"
  },
  "paths": {
    "/echo": {
      "post": {
        "operationId": "echoMessage",
        "summary": "Echo back the request body",
        "responses": {
          "200": {
            "description": "The echoed message"
          }
        }
      }
    }
  }
}
`,
}

func main() {
	dir := flag.String("dir", "specs", "directory to seed with sample specs")
	flag.Parse()

	if err := os.MkdirAll(*dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for name, body := range samples {
		path := filepath.Join(*dir, name)
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", path)
	}
}
