// File: cmd/vectool/commands.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/momentics/hioload-vec/api"
	"github.com/momentics/hioload-vec/binheap"
	"github.com/momentics/hioload-vec/control"
	"github.com/momentics/hioload-vec/internal/concurrency"
	"github.com/momentics/hioload-vec/rstring"
	"github.com/momentics/hioload-vec/ring"
	"github.com/momentics/hioload-vec/strvec"
	"github.com/momentics/hioload-vec/textio"
)

// readLines loads every input line into a fresh string vector.
func (a *app) readLines() (*strvec.Vector, error) {
	v := a.newStrings()
	sc := bufio.NewScanner(a.in)
	for sc.Scan() {
		v.Push(sc.Text())
	}
	return v, sc.Err()
}

func (a *app) writeLines(v *strvec.Vector) {
	v.Each(func(s string) { a.printf("%s\n", s) })
}

func (a *app) splitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split each input line into tokens and print them in bracketed form",
		RunE: func(*cobra.Command, []string) error {
			sc := bufio.NewScanner(a.in)
			for sc.Scan() {
				v := a.newStrings()
				v.Split(sc.Text(), a.v.GetString(control.KeyDelimiters))
				if err := textio.WriteStrings(a.out, v); err != nil {
					return err
				}
				a.printf("\n")
				v.Close()
			}
			return sc.Err()
		},
	}
	cmd.Flags().String("delims", "", "delimiter characters (default whitespace)")
	_ = a.v.BindPFlag(control.KeyDelimiters, cmd.Flags().Lookup("delims"))
	return cmd
}

func (a *app) joinCmd() *cobra.Command {
	var sep string
	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join all whitespace-separated input tokens with a separator",
		RunE: func(*cobra.Command, []string) error {
			data, err := io.ReadAll(a.in)
			if err != nil {
				return err
			}
			v := a.newStrings()
			defer v.Close()
			v.Split(string(data), "")
			a.printf("%s\n", v.Join(sep))
			return nil
		},
	}
	cmd.Flags().StringVar(&sep, "sep", ",", "separator")
	return cmd
}

func (a *app) sortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sort",
		Short: "Sort input lines",
		RunE: func(*cobra.Command, []string) error {
			v, err := a.readLines()
			if err != nil {
				return err
			}
			defer v.Close()
			v.Sort(a.cfg.IgnoreCase)
			a.writeLines(v)
			return nil
		},
	}
}

func (a *app) setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set",
		Short: "Print input lines once each, in first-seen order",
		RunE: func(*cobra.Command, []string) error {
			v := a.newStrings()
			defer v.Close()
			sc := bufio.NewScanner(a.in)
			for sc.Scan() {
				v.InsertAsSet(sc.Text())
			}
			if err := sc.Err(); err != nil {
				return err
			}
			a.writeLines(v)
			return nil
		},
	}
}

func (a *app) heapsortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "heapsort",
		Short: "Sort whitespace-separated integers through a binary heap",
		RunE: func(*cobra.Command, []string) error {
			h := binheap.New(api.OrderedTraits[int](), a.cfg.InitialCapacity, a.intOptions()...)
			defer h.Close()
			sc := bufio.NewScanner(a.in)
			sc.Split(bufio.ScanWords)
			for sc.Scan() {
				n, err := strconv.Atoi(sc.Text())
				if err != nil {
					return fmt.Errorf("heapsort: %w", err)
				}
				h.Put(n)
			}
			if err := sc.Err(); err != nil {
				return err
			}
			for {
				n, ok := h.Get()
				if !ok {
					break
				}
				a.printf("%d\n", n)
			}
			return nil
		},
	}
}

func (a *app) pipeCmd() *cobra.Command {
	var pin bool
	cmd := &cobra.Command{
		Use:   "pipe",
		Short: "Move input lines through an SPSC ring from a reader to a writer goroutine",
		RunE: func(*cobra.Command, []string) error {
			var opts []ring.Option[*rstring.Rep]
			opts = append(opts, ring.WithTraits(strvec.Traits(false)))
			if a.cfg.Allocator == control.AllocatorSlab {
				opts = append(opts, ring.WithAllocator[*rstring.Rep](a.repPool))
			}
			r := ring.New(a.cfg.RingCapacity, opts...)
			defer r.Close()

			done := make(chan struct{})
			g, ctx := errgroup.WithContext(context.Background())
			g.Go(func() error {
				if pin {
					defer a.pin(1)()
				}
				w := bufio.NewWriter(a.out)
				defer w.Flush()
				for {
					rep, ok := r.Get()
					if !ok {
						select {
						case <-done:
							if r.Empty() {
								return w.Flush()
							}
						default:
						}
						runtime.Gosched()
						continue
					}
					_, err := w.WriteString(rep.String() + "\n")
					rep.Release()
					if err != nil {
						return err
					}
				}
			})

			if pin {
				defer a.pin(0)()
			}
			sc := bufio.NewScanner(a.in)
			full := 0
			for ctx.Err() == nil && sc.Scan() {
				rep := rstring.New(sc.Text())
				for !r.Put(rep) && ctx.Err() == nil {
					full++
					runtime.Gosched()
				}
				rep.Release()
			}
			close(done)
			if err := g.Wait(); err != nil {
				return err
			}
			if full > 0 {
				a.logger.Printf("[vectool] ring full %d times (capacity %d)", full, r.Cap())
			}
			return sc.Err()
		},
	}
	cmd.Flags().BoolVar(&pin, "pin", false, "pin producer and consumer to separate CPUs")
	return cmd
}

// pin binds the calling goroutine to a CPU and returns the undo func.
// Failures are logged and leave the goroutine unpinned.
func (a *app) pin(cpuID int) func() {
	p, err := concurrency.PinCurrentThread(cpuID)
	if err != nil {
		a.logger.Printf("[vectool] %v", err)
		return func() {}
	}
	return func() {
		if err := p.Unpin(); err != nil {
			a.logger.Printf("[vectool] unpin: %v", err)
		}
	}
}

func (a *app) loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Parse a bracketed string sequence and print it back",
		RunE: func(*cobra.Command, []string) error {
			data, err := io.ReadAll(a.in)
			if err != nil {
				return err
			}
			v := a.newStrings()
			defer v.Close()
			n, err := textio.LoadStrings(v, string(data))
			if err != nil {
				return err
			}
			a.logger.Printf("[vectool] loaded %d elements", n)
			if err := textio.WriteStrings(a.out, v); err != nil {
				return err
			}
			a.printf("\n")
			return nil
		},
	}
}
