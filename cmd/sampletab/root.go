package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/on-the-ground/sampled_go/config"
	"github.com/on-the-ground/sampled_go/internal/catalog"
	"github.com/on-the-ground/sampled_go/samplecache"
	"github.com/on-the-ground/sampled_go/sampled"
	"github.com/on-the-ground/sampled_go/shared/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	logLevel string
	envFiles []string
	maxCache int64
}

// session holds what one command invocation shares across its profiles.
type session struct {
	opts   *rootOptions
	cmd    *cobra.Command
	logger *zap.Logger
	cache  *samplecache.Cache[float64, float64]
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "sampletab",
		Short:        "Sample functions on uniform multi-phase grids",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides profiles")
	root.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil, ".env files to load before reading profiles")
	root.PersistentFlags().Int64Var(&opts.maxCache, "cache-samples", samplecache.DefaultMaxSamples, "maximum number of values kept in the grid cache")

	root.AddCommand(
		newTableCmd(opts),
		newLookupCmd(opts),
		newDescribeCmd(opts),
		newFunctionsCmd(),
	)
	return root
}

func newSession(cmd *cobra.Command, opts *rootOptions) (*session, error) {
	level, err := log.ParseLevel(opts.logLevel)
	if err != nil {
		return nil, err
	}
	if opts.logLevel == "" {
		level = log.LogWarn
	}
	logger := log.NewZapLogger(level, cmd.ErrOrStderr())

	cache, err := samplecache.New[float64, float64](samplecache.Config{
		MaxSamples: opts.maxCache,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}
	return &session{opts: opts, cmd: cmd, logger: logger, cache: cache}, nil
}

func (s *session) close() {
	s.cache.Close()
	log.Sync(s.logger)
}

func (s *session) loadProfile(path string) (*config.Profile, error) {
	p, err := config.Load(path, s.opts.envFiles...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.opts.logLevel != "" {
		// already validated by newSession
		p.LogLevel, _ = log.ParseLevel(s.opts.logLevel)
	}
	return p, nil
}

// sample builds the grid of p, reusing an identical grid built earlier in
// the session.
func (s *session) sample(p *config.Profile) (*sampled.Function[float64, float64], error) {
	fn, err := catalog.Lookup(p.Function)
	if err != nil {
		return nil, err
	}

	logger := log.NewZapLogger(p.LogLevel, s.cmd.ErrOrStderr()).With(zap.String("profile", p.Name))
	defer log.Sync(logger)
	opts := []sampled.Option{sampled.WithLogger(logger)}
	if p.MaxSamples > 0 {
		opts = append(opts, sampled.WithMaxSamples(p.MaxSamples))
	}

	switch p.Mode {
	case config.ModeExtended:
		key := samplecache.ExtendedRangeKey(p.Function, p.Stop.String(), p.Lower, p.Step, p.Subsamples, p.AtLeast)
		return s.cache.GetOrBuild(key, func() (*sampled.Function[float64, float64], error) {
			return sampled.NewExtendedRange(fn, p.Lower, p.Step, p.Stop.Stops, p.Subsamples, p.AtLeast, opts...)
		})
	default:
		key := samplecache.FixedRangeKey(p.Function, p.Lower, p.Upper, p.Size, p.Subsamples)
		return s.cache.GetOrBuild(key, func() (*sampled.Function[float64, float64], error) {
			return sampled.NewFixedRange(fn, p.Lower, p.Upper, p.Size, p.Subsamples, opts...)
		})
	}
}

func newTableCmd(opts *rootOptions) *cobra.Command {
	var phase int
	cmd := &cobra.Command{
		Use:   "table PROFILE...",
		Short: "Print the sampled values of each profile",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if phase < -1 {
				return fmt.Errorf("invalid phase %d: want -1 for all phases or a phase index", phase)
			}

			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			out := cmd.OutOrStdout()
			for _, path := range args {
				p, err := s.loadProfile(path)
				if err != nil {
					return err
				}
				f, err := s.sample(p)
				if err != nil {
					return err
				}
				if phase >= f.NSubsamples() {
					return fmt.Errorf("%s: phase %d out of range [0, %d)", path, phase, f.NSubsamples())
				}

				fmt.Fprintf(out, "# %s: %s\n", p.Name, f)
				fmt.Fprintln(out, "# phase\tindex\tx\tvalue")
				for k := 0; k < f.NSubsamples(); k++ {
					if phase >= 0 && k != phase {
						continue
					}
					start := f.SubsampleStart(k)
					for i, y := range f.Subsample(k) {
						x := start + float64(i)*f.StepSize()
						fmt.Fprintf(out, "%d\t%d\t%s\t%s\n", k, i, formatFloat(x), formatFloat(y))
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&phase, "phase", -1, "print only this phase (-1 for all)")
	return cmd
}

func newLookupCmd(opts *rootOptions) *cobra.Command {
	var profilePath string
	cmd := &cobra.Command{
		Use:   "lookup --profile PROFILE X...",
		Short: "Look up the nearest sampled value at each X",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			xs := make([]float64, len(args))
			for i, a := range args {
				x, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return fmt.Errorf("invalid coordinate %q: %w", a, err)
				}
				xs[i] = x
			}

			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			p, err := s.loadProfile(profilePath)
			if err != nil {
				return err
			}
			f, err := s.sample(p)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "# x\tphase\tindex\tvalue")
			for _, x := range xs {
				i, k := f.ClosestGridPoint(x)
				value := "out of range"
				if f.IsValidStepIndex(i) {
					value = formatFloat(f.Value(i, k))
				}
				fmt.Fprintf(out, "%s\t%d\t%d\t%s\n", formatFloat(x), k, i, value)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&profilePath, "profile", "p", "", "sampling profile (YAML)")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}

func newDescribeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "describe PROFILE...",
		Short: "Describe the grid of each profile",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			out := cmd.OutOrStdout()
			for _, path := range args {
				p, err := s.loadProfile(path)
				if err != nil {
					return err
				}
				f, err := s.sample(p)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "profile:     %s\n", p.Name)
				fmt.Fprintf(out, "function:    %s (%s)\n", p.Function, p.Mode)
				fmt.Fprintf(out, "range:       [%s, %s) size %s\n",
					formatFloat(f.Lower()), formatFloat(f.Upper()), formatFloat(f.RangeSize()))
				fmt.Fprintf(out, "samples:     %d x %d subsamples\n", f.Size(), f.NSubsamples())
				fmt.Fprintf(out, "step:        %s (substep %s)\n",
					formatFloat(f.StepSize()), formatFloat(f.SubstepSize()))
			}
			return nil
		},
	}
}

func newFunctionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "functions",
		Short: "List the functions profiles can name",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(catalog.Names(), "\n"))
		},
	}
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
