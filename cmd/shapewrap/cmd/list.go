package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-drift/shapewrap/pkg/registry"
)

func init() {
	RegisterCommand(&Command{
		Name:  "list",
		Short: "List registered shapes",
		Long: `List the shapes available in the registry, grouped by the context
they can be rendered in.

A decorative shape is any responsive or shared shape. Left-wrap shapes
need responsive geometry and modal-wrap shapes need a modal record.`,
		Usage: "shapewrap list",
		Run:   runList,
	})
}

func runList(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("list takes no arguments")
	}
	e, err := loadEnv()
	if err != nil {
		return err
	}
	return writeNames(os.Stdout, e.registry)
}

func writeNames(w io.Writer, reg *registry.Registry) error {
	for _, ctx := range []registry.Context{registry.ContextDecorative, registry.ContextLeftWrap, registry.ContextModalWrap} {
		names := reg.Names(ctx)
		list := "(none)"
		if len(names) > 0 {
			list = strings.Join(names, ", ")
		}
		if _, err := fmt.Fprintf(w, "%-11s %s\n", ctx.String()+":", list); err != nil {
			return err
		}
	}
	return nil
}
