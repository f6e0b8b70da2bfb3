//go:build debug || profile

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pkg/profile"

	"github.com/frism/frism/internal/errors"
)

type ProfileOptions struct {
	memPath string
	cpuPath string
}

func (opts *ProfileOptions) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&opts.memPath, "mem-profile", "", "write memory profile to `dir`")
	f.StringVar(&opts.cpuPath, "cpu-profile", "", "write cpu profile to `dir`")
}

func registerProfiling(cmd *cobra.Command) {
	var profiler ProfileOptions

	origPreRun := cmd.PersistentPreRunE
	cmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		if origPreRun != nil {
			if err := origPreRun(c, args); err != nil {
				return err
			}
		}
		return profiler.Start()
	}

	profiler.AddFlags(cmd.PersistentFlags())
}

func (opts *ProfileOptions) Start() error {
	if opts.memPath != "" && opts.cpuPath != "" {
		return errors.Fatal("only one profile (memory or CPU) may be activated at the same time")
	}

	var prof interface {
		Stop()
	}

	switch {
	case opts.memPath != "":
		prof = profile.Start(profile.Quiet, profile.NoShutdownHook, profile.MemProfile, profile.ProfilePath(opts.memPath))
	case opts.cpuPath != "":
		prof = profile.Start(profile.Quiet, profile.NoShutdownHook, profile.CPUProfile, profile.ProfilePath(opts.cpuPath))
	}

	if prof != nil {
		AddCleanupHandler(func() error {
			prof.Stop()
			return nil
		})
	}

	return nil
}
