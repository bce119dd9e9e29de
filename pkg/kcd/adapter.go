package kcd

import (
	"github.com/dd0wney/cluso-candb/pkg/adapter"
	"github.com/dd0wney/cluso-candb/pkg/model"
)

// formatAdapter plugs the KCD codec into the format-adapter registry with
// a fixed option set.
type formatAdapter struct {
	load LoadOptions
	dump DumpOptions
}

// NewAdapter wraps the codec as a registrable format adapter.
func NewAdapter(load LoadOptions, dump DumpOptions) adapter.Adapter {
	return &formatAdapter{load: load, dump: dump}
}

func (a *formatAdapter) Name() string         { return "kcd" }
func (a *formatAdapter) Extensions() []string { return []string{".kcd"} }

func (a *formatAdapter) Load(data []byte) (*model.Network, error) {
	return Load(data, a.load)
}

func (a *formatAdapter) Dump(network *model.Network) ([]byte, error) {
	return Dump(network, a.dump)
}

func init() {
	adapter.Register(NewAdapter(DefaultLoadOptions(), DumpOptions{}))
}
