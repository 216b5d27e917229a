package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ucqdev/cuahquick/app/routes"
	"github.com/ucqdev/cuahquick/internal/server"
	"github.com/ucqdev/cuahquick/pkg/router"
)

// cuahquick serve — start the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// cuahquick route:list — print all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := router.New()
		routes.RegisterAPI(r)

		infos := r.Routes()
		if len(infos) == 0 {
			fmt.Println("No named routes registered.")
			return nil
		}

		sort.Slice(infos, func(i, j int) bool {
			if infos[i].Path != infos[j].Path {
				return infos[i].Path < infos[j].Path
			}
			return infos[i].Method < infos[j].Method
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		for _, info := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", info.Method, info.Path, info.Name)
		}
		return w.Flush()
	},
}
