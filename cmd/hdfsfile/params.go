package main

import (
	"github.com/spf13/pflag"

	"github.com/arthur-debert/hdfsfile/pkg/hdfsfile"
)

// paramFlags binds the module parameters to command-line flags. Flags that
// were set explicitly override values read from --params.
type paramFlags struct {
	file   string
	params hdfsfile.Params
	mode   string
}

func (f *paramFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.file, "params", "", "YAML file with module parameters (path, state, owner, ...)")
	fs.StringVar(&f.params.Path, "path", "", "absolute path being managed (aliases: --dest, --name)")
	fs.StringVar(&f.params.Dest, "dest", "", "alias of --path")
	fs.StringVar(&f.params.Name, "name", "", "alias of --path")
	fs.StringVar(&f.params.State, "state", "", "desired state: file, directory, absent or touch (default file)")
	fs.StringVar(&f.params.Owner, "owner", "", "owner the path should have")
	fs.StringVar(&f.params.Group, "group", "", "group the path should have")
	fs.StringVar(&f.mode, "mode", "", "octal permission mode, e.g. 0755 (always reported as a change)")
	fs.IntVar(&f.params.Replication, "replication", 0, "replication factor (applied recursively to directories)")
	fs.BoolVar(&f.params.Recurse, "recurse", false, "apply owner, group and mode recursively")
	fs.StringVar(&f.params.Method, "method", "", "backend transport: command or library (default command)")
}

// resolve returns the parameters from --params overlaid with explicit flags.
func (f *paramFlags) resolve(fs *pflag.FlagSet) (hdfsfile.Params, error) {
	p := hdfsfile.Params{}
	if f.file != "" {
		var err error
		p, err = hdfsfile.ReadParamsFile(f.file)
		if err != nil {
			return hdfsfile.Params{}, err
		}
	}

	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("path", func() { p.Path = f.params.Path })
	set("dest", func() { p.Dest = f.params.Dest })
	set("name", func() { p.Name = f.params.Name })
	set("state", func() { p.State = f.params.State })
	set("owner", func() { p.Owner = f.params.Owner })
	set("group", func() { p.Group = f.params.Group })
	set("mode", func() { p.Mode = hdfsfile.ModeValue(f.mode) })
	set("replication", func() { p.Replication = f.params.Replication })
	set("recurse", func() { p.Recurse = f.params.Recurse })
	set("method", func() { p.Method = f.params.Method })
	return p, nil
}
