package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ecmwf/plume/config"
	"github.com/ecmwf/plume/logging"
	"github.com/ecmwf/plume/manager"
	"github.com/ecmwf/plume/modeldata"
	"github.com/ecmwf/plume/nwpemulator"
	"github.com/ecmwf/plume/protocol"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "plumectl",
		Short: "Drive a plume Manager through a configured run",
	}
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		managerConfigPath string
		emulatorPath      string
		libDir            string
		coreVersion       string
		fieldLibVersion   string
		steps             int
		verbose           bool
		watchLibs         bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Configure, negotiate, feed, and run a set of plugins against a synthetic model",
		RunE: func(cmd *cobra.Command, args []string) error {
			level := logging.Info
			if verbose {
				level = logging.Debug
			}
			log := logging.New(level)

			if watchLibs {
				watcher, err := manager.WatchLibraries(log, []string{libDir})
				if err != nil {
					return err
				}
				defer watcher.Close()
			}

			managerRaw, err := os.ReadFile(managerConfigPath)
			if err != nil {
				return err
			}
			managerCfg, err := config.ParseManagerConfig(managerRaw)
			if err != nil {
				return err
			}

			emulatorRaw, err := os.ReadFile(emulatorPath)
			if err != nil {
				return err
			}
			emulatorCfg, err := nwpemulator.ParseConfig(emulatorRaw)
			if err != nil {
				return err
			}
			emulator := nwpemulator.New(emulatorCfg)

			offeredCatalogue, err := emulator.Catalogue(log)
			if err != nil {
				return err
			}
			offers := protocol.New(log, coreVersion, fieldLibVersion)
			for _, p := range offeredCatalogue.Parameters() {
				offers.Parameters().Insert(p)
			}

			m := manager.New(log, manager.NewNativeLoader(libDir), nil, manager.NewMetrics(nil))

			if err := m.Configure(managerCfg); err != nil {
				return err
			}
			if err := m.Negotiate(offers); err != nil {
				log.Warn("negotiate reported errors: %v", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "active parameters: %v\n", m.GetActiveParams())

			data := modeldata.New(log)
			if err := emulator.Populate(data); err != nil {
				return err
			}
			if err := m.FeedPlugins(data); err != nil {
				return err
			}

			for i := 0; i < steps; i++ {
				emulator.Advance()
				if err := emulator.Populate(data); err != nil {
					return err
				}
				if err := m.Run(); err != nil {
					return err
				}
			}

			return m.Teardown()
		},
	}

	cmd.Flags().StringVar(&managerConfigPath, "config", "", "path to the manager configuration YAML")
	cmd.Flags().StringVar(&emulatorPath, "emulator", "", "path to the nwp emulator configuration YAML")
	cmd.Flags().StringVar(&libDir, "lib-dir", ".", "directory plugin shared libraries are resolved from")
	cmd.Flags().StringVar(&coreVersion, "core-version", "", "offered core framework version")
	cmd.Flags().StringVar(&fieldLibVersion, "field-lib-version", "", "offered gridded-field library version")
	cmd.Flags().IntVar(&steps, "steps", 1, "number of run() time steps to execute")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug-level logging")
	cmd.Flags().BoolVar(&watchLibs, "watch-libs", false, "log filesystem changes under lib-dir for the run's duration")
	cmd.MarkFlagRequired("config")
	cmd.MarkFlagRequired("emulator")

	return cmd
}
