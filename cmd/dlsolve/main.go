package main

import (
	"fmt"
	"os"

	"github.com/irifrance/gini"
	"github.com/irifrance/gini/z"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bobosoft/opensmt/pkg/dl"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dlsolve [script]",
		Short: "dlsolve",
		Long:  `A demonstration DPLL(T) driver pairing a Boolean SAT search with the difference-logic core.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runSolve,
	}
	rootCmd.Flags().Bool("debug", false, "enable debug logging")
	rootCmd.Flags().Bool("lazy-generation", false, "defer shortest-path-tree maintenance until Explain needs it")
	rootCmd.Flags().Bool("no-theory-propagation", false, "disable deduction, checking only for negative cycles")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSolve(cmd *cobra.Command, args []string) error {
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		log.SetLevel(log.DebugLevel)
	}
	lazy, _ := cmd.Flags().GetBool("lazy-generation")
	noProp, _ := cmd.Flags().GetBool("no-theory-propagation")

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	s, err := parseScript(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	core := dl.NewCore(constStore{},
		dl.WithTheoryPropagation(!noProp),
		dl.WithLazyGeneration(lazy),
	)
	core.SetTracer(dl.LoggingTracer{Log: log.WithField("component", "dlsolve")})

	g := gini.New()
	lits := make(map[int64]z.Lit, len(s.order))
	for _, a := range s.order {
		if err := core.Declare(a); err != nil {
			return err
		}
		lits[a.id] = g.Lit()
	}
	for _, clause := range s.clauses {
		for _, signed := range clause {
			id := signed
			neg := false
			if id < 0 {
				id, neg = -id, true
			}
			m := lits[id]
			if neg {
				m = m.Not()
			}
			g.Add(m)
		}
		g.Add(z.LitNull)
	}

	const satisfiable = 1
	const maxRounds = 10000

	for round := 0; round < maxRounds; round++ {
		if g.Solve() != satisfiable {
			fmt.Println("unsat")
			return nil
		}

		core.Push()
		conflict, blocked := assertModel(core, s, lits, g)
		core.Pop()

		if !blocked {
			printModel(s, lits, g)
			return nil
		}
		for _, m := range conflict {
			g.Add(m)
		}
		g.Add(z.LitNull)
	}
	return fmt.Errorf("dlsolve: exceeded %d refinement rounds", maxRounds)
}

// assertModel asserts the Boolean model g just found into the theory
// core atom by atom. If the core rejects one as part of a negative
// cycle, it returns the blocking clause (the negation of the literals
// that produced the cycle) and blocked=true.
func assertModel(core *dl.Core, s *script, lits map[int64]z.Lit, g *gini.Gini) ([]z.Lit, bool) {
	for _, a := range s.order {
		m := lits[a.id]
		polarity := dl.Positive
		if !g.Value(m) {
			polarity = dl.Negative
			m = m.Not()
		}
		if _, err := core.AssertLit(a, polarity); err != nil {
			if cycle, ok := dl.ExplainCycle(err); ok {
				return blockingClause(cycle, lits, g), true
			}
			log.WithError(err).Error("dlsolve: theory assertion failed")
			return nil, true
		}
	}
	return nil, false
}

func blockingClause(cycle []*dl.Edge, lits map[int64]z.Lit, g *gini.Gini) []z.Lit {
	clause := make([]z.Lit, 0, len(cycle))
	for _, e := range cycle {
		m := lits[e.Atom().ID()]
		if e.EdgePolarity() == dl.Negative {
			m = m.Not()
		}
		clause = append(clause, m.Not())
	}
	return clause
}

func printModel(s *script, lits map[int64]z.Lit, g *gini.Gini) {
	fmt.Println("sat")
	for _, a := range s.order {
		val := g.Value(lits[a.id])
		fmt.Printf("%d: %s = %v\n", a.id, a.text, val)
	}
}
