// Package factory provides a small generic registry used to build pluggable
// modules from configuration. A module is described by a type string and a
// map of raw settings; its factory decodes the settings into a typed struct.
//
// Example usage:
//
//	reg := factory.NewRegistry[calendar.Source]()
//	reg.Register("file", func(conf map[string]any) (calendar.Source, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return calendar.FileSource{Path: c.Path}, nil
//	})
//	src, err := reg.Create(factory.ModuleConfig{Type: "file", Conf: map[string]any{"path": "calendar.yaml"}})
package factory
