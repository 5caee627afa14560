package docs

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "Rastreador API",
    "description": "Client registry for vehicle tracker installations with free-text client data extraction",
    "version": "1.0"
  },
  "basePath": "/",
  "tags": [
    {"name": "parse"},
    {"name": "clients"},
    {"name": "templates"},
    {"name": "import"}
  ],
  "paths": {}
}`

func init() {
	swag.Register(swag.Name, &doc{})
}

type doc struct{}

func (d *doc) ReadDoc() string {
	return docTemplate
}
