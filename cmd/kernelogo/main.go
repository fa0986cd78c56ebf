package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/esimov/kernelogo"
	"github.com/esimov/kernelogo/notebook"
	"github.com/esimov/kernelogo/utils"
	"github.com/spf13/cobra"
)

const helpBanner = `
┬┌─┌─┐┬─┐┌┐┌┌─┐┬  ┌─┐┌─┐┌─┐
├┴┐├┤ ├┬┘│││├┤ │  │ ││ ┬│ │
┴ ┴└─┘┴└─┘└┘└─┘┴─┘└─┘└─┘└─┘

Jupyter kernel logo generator.
    Version: %s
`

// pipeName is the file name that indicates stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

// tableOpts holds the flags shared by the commands working on the kernel table.
type tableOpts struct {
	tablePath   string
	outputDir   string
	contextDir  string
	kernelsDir  string
	boldFont    string
	regularFont string
}

func (o *tableOpts) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&o.tablePath, "table", "t", "", "YAML file overriding the built-in kernel table")
	flags.StringVarP(&o.outputDir, "out", "o", kernelogo.DefaultOutputDir, "Destination directory of the logos")
	flags.StringVar(&o.contextDir, "context-dir", ".", "Build context of the image, the COPY sources are relative to it")
	flags.StringVar(&o.kernelsDir, "kernels-dir", kernelogo.DefaultKernelsDir, "Kernel specs directory inside the image")
	flags.StringVar(&o.boldFont, "bold-font", kernelogo.DefaultBoldFont, "Font file or URL used for the label")
	flags.StringVar(&o.regularFont, "regular-font", kernelogo.DefaultRegularFont, "Font file or URL used for the sublabel")
}

// generator builds a logo generator out of the command line options.
func (o *tableOpts) generator() (*kernelogo.Generator, error) {
	table := kernelogo.DefaultTable
	if o.tablePath != "" {
		f, err := os.Open(o.tablePath)
		if err != nil {
			return nil, fmt.Errorf("unable to open the kernel table: %w", err)
		}
		defer f.Close()

		table, err = kernelogo.LoadTable(f)
		if err != nil {
			return nil, err
		}
	}

	r := kernelogo.NewRenderer(table)
	r.BoldFont = o.boldFont
	r.RegularFont = o.regularFont

	src, err := kernelogo.ContextPath(o.contextDir, o.outputDir)
	if err != nil {
		return nil, err
	}

	g := kernelogo.NewGenerator(r)
	g.SourceDir = src
	g.KernelsDir = o.kernelsDir

	return g, nil
}

func main() {
	log.SetFlags(0)

	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf(
			utils.DecorateText("\nError: %s", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "kernelogo",
		Short:         "Generate Jupyter kernel logos",
		Long:          fmt.Sprintf(helpBanner, Version),
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newGenerateCmd(),
		newCommandsCmd(),
		newTableCmd(),
		newNotebookConfigCmd(),
	)

	return rootCmd
}

func newGenerateCmd() *cobra.Command {
	var opts tableOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render the logos of every kernel and print the Dockerfile commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := opts.generator()
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			deco := utils.NewDecorator(stdout)
			now := time.Now()

			g.Progress = stdout
			if err := g.SaveAll(opts.outputDir); err != nil {
				return err
			}

			fmt.Fprintln(stdout)
			if err := g.WritePackagingCommands(stdout); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "\n%s\n", deco.Text("Logo generation complete!", utils.SuccessMessage))

			stderr := cmd.ErrOrStderr()
			fmt.Fprintf(stderr, "Execution time: %s\n",
				utils.NewDecorator(stderr).Text(utils.FormatTime(time.Since(now)), utils.SuccessMessage),
			)
			return nil
		},
	}
	opts.register(cmd)

	return cmd
}

func newCommandsCmd() *cobra.Command {
	var opts tableOpts

	cmd := &cobra.Command{
		Use:   "commands",
		Short: "Print the Dockerfile commands copying the logos into the image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := opts.generator()
			if err != nil {
				return err
			}
			return g.WritePackagingCommands(cmd.OutOrStdout())
		},
	}
	opts.register(cmd)

	return cmd
}

func newTableCmd() *cobra.Command {
	var opts tableOpts

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the kernel table as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := opts.generator()
			if err != nil {
				return err
			}
			return g.Renderer.Table.WriteYAML(cmd.OutOrStdout())
		},
	}
	opts.register(cmd)

	return cmd
}

func newNotebookConfigCmd() *cobra.Command {
	var source, destination string

	cmd := &cobra.Command{
		Use:   "notebook-config",
		Short: "Write the " + notebook.FileName + " file of the notebook server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := notebook.Default()
			if source != "" {
				f, err := os.Open(source)
				if err != nil {
					return fmt.Errorf("unable to open the notebook configuration: %w", err)
				}
				defer f.Close()

				if cfg, err = notebook.Load(f); err != nil {
					return err
				}
			}

			stderr := cmd.ErrOrStderr()
			if cfg.AuthDisabled() {
				fmt.Fprintln(stderr, utils.NewDecorator(stderr).Text(
					"Warning: token and password are empty, the server will accept any connection!",
					utils.ErrorMessage,
				))
			}

			if destination == pipeName {
				return cfg.Render(cmd.OutOrStdout())
			}

			f, err := os.Create(destination)
			if err != nil {
				return fmt.Errorf("unable to create the destination file: %w", err)
			}
			if err := cfg.Render(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("unable to write the destination file: %w", err)
			}

			fmt.Fprintf(stderr, "The notebook configuration has been saved as: %s\n",
				utils.NewDecorator(stderr).Text(destination, utils.SuccessMessage),
			)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&source, "config", "c", "", "YAML file overriding the default server options")
	flags.StringVarP(&destination, "out", "o", pipeName, "Destination file, - for stdout")

	return cmd
}
