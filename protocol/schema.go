package protocol

import (
	"reflect"

	"github.com/invopop/jsonschema"
)

func reflector() *jsonschema.Reflector {
	r := new(jsonschema.Reflector)
	r.Anonymous = true
	r.DoNotReference = true
	r.Namer = func(t reflect.Type) string {
		switch t {
		case reflect.TypeOf(commandWire{}):
			return "Command"
		case reflect.TypeOf(statusWire{}):
			return "Status"
		}

		return t.Name()
	}

	return r
}

// CommandSchema describes the wire form of a Command.
func CommandSchema() *jsonschema.Schema {
	s := reflector().Reflect(&commandWire{})
	s.Title = "Command"
	return s
}

// StatusSchema describes the wire form of a Status.
func StatusSchema() *jsonschema.Schema {
	s := reflector().Reflect(&statusWire{})
	s.Title = "Status"
	return s
}
