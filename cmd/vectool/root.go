// File: cmd/vectool/root.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package main

import (
	"fmt"
	"io"
	"log"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/momentics/hioload-vec/control"
	"github.com/momentics/hioload-vec/pool"
	"github.com/momentics/hioload-vec/rstring"
	"github.com/momentics/hioload-vec/storage"
	"github.com/momentics/hioload-vec/strvec"
)

// app carries state shared by all subcommands.
type app struct {
	in     io.Reader
	out    io.Writer
	logger *log.Logger

	v       *viper.Viper
	cfg     control.Config
	stats   bool
	metrics *control.MetricsRegistry

	repPool *pool.SlotPool[*rstring.Rep]
	intPool *pool.SlotPool[int]
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{
		in:      in,
		out:     out,
		logger:  log.New(errOut, "", log.LstdFlags),
		v:       control.NewViper(),
		metrics: control.NewMetricsRegistry(),
	}
	var cfgFile string

	root := &cobra.Command{
		Use:          "vectool",
		Short:        "Exercise hioload-vec containers over stdin",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			cfg, err := control.Load(a.v, cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.repPool = pool.NewSlotPool[*rstring.Rep](cfg.PoolDepth)
			a.intPool = pool.NewSlotPool[int](cfg.PoolDepth)
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if !a.stats {
				return nil
			}
			return a.dumpStats()
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	pf.Int("capacity", storage.DefaultCapacity, "initial container capacity")
	pf.String("allocator", control.AllocatorSlab, "slot allocator: slab or heap")
	pf.Int("pool-depth", 64, "free buffers kept per slab size class")
	pf.Bool("ignore-case", false, "case-insensitive comparisons")
	pf.BoolVar(&a.stats, "stats", false, "print allocator metrics to stderr on exit")
	for flag, key := range map[string]string{
		"capacity":    control.KeyInitialCapacity,
		"allocator":   control.KeyAllocator,
		"pool-depth":  control.KeyPoolDepth,
		"ignore-case": control.KeyIgnoreCase,
	} {
		if err := a.v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			a.logger.Printf("[vectool] bind flag %s: %v", flag, err)
		}
	}

	root.AddCommand(
		a.splitCmd(),
		a.joinCmd(),
		a.sortCmd(),
		a.setCmd(),
		a.heapsortCmd(),
		a.pipeCmd(),
		a.loadCmd(),
	)
	return root
}

// newStrings builds a string vector on the configured allocator.
func (a *app) newStrings() *strvec.Vector {
	if a.cfg.Allocator == control.AllocatorSlab {
		return strvec.New(a.cfg.InitialCapacity, storage.WithAllocator[*rstring.Rep](a.repPool))
	}
	return strvec.New(a.cfg.InitialCapacity)
}

func (a *app) intOptions() []storage.Option[int] {
	if a.cfg.Allocator == control.AllocatorSlab {
		return []storage.Option[int]{storage.WithAllocator[int](a.intPool)}
	}
	return nil
}

func (a *app) dumpStats() error {
	if a.repPool != nil {
		a.metrics.PublishPoolStats("pool.strings", a.repPool.Stats())
	}
	if a.intPool != nil {
		a.metrics.PublishPoolStats("pool.ints", a.intPool.Stats())
	}
	snap := a.metrics.GetSnapshot()
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		a.logger.Printf("[vectool] %s = %v", k, snap[k])
	}
	return nil
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
