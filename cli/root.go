// Package cli provides the classspacectl command line tool: registering
// modules from a manifest file, triggering resolution, and printing
// diagnostics, built on spf13/cobra.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/openmodule/classspace/module"
	"github.com/openmodule/classspace/registry"
)

// Version information, set at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
)

// NewRootCommand builds the classspacectl root command.
func NewRootCommand(reg *registry.Registry) *cobra.Command {
	root := &cobra.Command{
		Use:   "classspacectl",
		Short: "Inspect and drive a classspace module registry",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	root.AddCommand(newRegisterCommand(reg))
	root.AddCommand(newResolveCommand(reg))
	root.AddCommand(newListCommand(reg))
	root.AddCommand(newVersionCommand())
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print classspacectl version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("classspacectl %s (%s)\n", Version, Commit)
		},
	}
}

func newListCommand(reg *registry.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered modules and their resolution state",
		Run: func(cmd *cobra.Command, args []string) {
			for _, m := range reg.Modules() {
				fmt.Printf("%d.%d\t%s\twires=%d\n", m.ID().BundleID, m.ID().ModuleID, m.State(), len(m.Wires()))
			}
		},
	}
}

func newResolveCommand(reg *registry.Registry) *cobra.Command {
	var bundleID, moduleID int64
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a module by bundle id and module id",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, ok := reg.Module(module.ID{BundleID: bundleID, ModuleID: moduleID})
			if !ok {
				return fmt.Errorf("no such module %d.%d", bundleID, moduleID)
			}
			if err := reg.Resolve(m); err != nil {
				return err
			}
			fmt.Printf("resolved %d.%d with %d wires\n", bundleID, moduleID, len(m.Wires()))
			return nil
		},
	}
	cmd.Flags().Int64Var(&bundleID, "bundle", 0, "bundle id")
	cmd.Flags().Int64Var(&moduleID, "module", 0, "module id")
	return cmd
}

// manifest is the on-disk descriptor accepted by "classspacectl register",
// a minimal YAML/JSON shape naming a module's capabilities and requirements.
type manifest struct {
	BundleID     int64               `yaml:"bundle_id" json:"bundle_id"`
	ModuleID     int64               `yaml:"module_id" json:"module_id"`
	Capabilities []manifestCap       `yaml:"capabilities" json:"capabilities"`
	Requirements []manifestReq       `yaml:"requirements" json:"requirements"`
}

type manifestCap struct {
	Namespace string   `yaml:"namespace" json:"namespace"`
	Package   string   `yaml:"package" json:"package"`
	Version   string   `yaml:"version" json:"version"`
	Uses      []string `yaml:"uses" json:"uses"`
}

type manifestReq struct {
	Filter   string `yaml:"filter" json:"filter"`
	Optional bool   `yaml:"optional" json:"optional"`
	Dynamic  bool   `yaml:"dynamic" json:"dynamic"`
}

func newRegisterCommand(reg *registry.Registry) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a module described by a manifest file",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read manifest: %w", err)
			}
			var man manifest
			if err := yaml.Unmarshal(data, &man); err != nil {
				return fmt.Errorf("parse manifest: %w", err)
			}
			m, err := buildModule(man)
			if err != nil {
				return err
			}
			reg.AddModule(m)
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{"registered": man.BundleID, "module": man.ModuleID})
		},
	}
	cmd.Flags().StringVar(&path, "manifest", "", "path to the module manifest (yaml or json)")
	_ = cmd.MarkFlagRequired("manifest")
	return cmd
}

func buildModule(man manifest) (*module.Module, error) {
	def := module.Definition{}
	for _, c := range man.Capabilities {
		ver, err := module.ParseVersion(c.Version)
		if err != nil {
			return nil, fmt.Errorf("capability %s: %w", c.Package, err)
		}
		def.Capabilities = append(def.Capabilities, module.Capability{
			Namespace: module.Namespace(c.Namespace),
			Properties: module.Properties{
				"package": c.Package,
				"version": ver,
			},
			Uses: c.Uses,
		})
	}
	for _, r := range man.Requirements {
		req, err := module.NewPackageRequirement(r.Filter, r.Optional, r.Dynamic)
		if err != nil {
			return nil, fmt.Errorf("requirement %s: %w", r.Filter, err)
		}
		if r.Dynamic {
			def.DynamicRequirements = append(def.DynamicRequirements, req)
		} else {
			def.Requirements = append(def.Requirements, req)
		}
	}
	id := module.ID{BundleID: man.BundleID, ModuleID: man.ModuleID}
	return module.New(id, def, emptyContentLoader{}, nil), nil
}

// emptyContentLoader stands in for a real module content archive, which
// classspacectl's manifest format has no way to describe -- module content
// is expected to be supplied by an embedding program via module.New
// directly in real deployments.
type emptyContentLoader struct{}

func (emptyContentLoader) GetClass(name string) (any, bool)          { return nil, false }
func (emptyContentLoader) GetResource(name string) (string, bool)    { return "", false }
func (emptyContentLoader) GetResources(name string) ([]string, bool) { return nil, false }
