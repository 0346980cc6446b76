package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// script is a parsed problem: a set of difference-logic variables, the
// atoms built over them, and a CNF over those atoms' truth values.
// The format is line-oriented and intentionally small, since its only
// job is to exercise pkg/dl end to end, not to be a general SMT-LIB
// front end:
//
//	var x0
//	var x1
//	atom 1 x0 - x1 <= 3
//	atom 2 x1 - x0 <= -1
//	clause 1 2
//	clause -1 2
type script struct {
	vars    map[string]*variable
	atoms   map[int64]*atom
	order   []*atom
	clauses [][]int64
}

func parseScript(r io.Reader) (*script, error) {
	s := &script{vars: make(map[string]*variable), atoms: make(map[int64]*atom)}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		var err error
		switch fields[0] {
		case "var":
			err = s.declareVar(fields)
		case "atom":
			err = s.declareAtom(fields)
		case "clause":
			err = s.declareClause(fields)
		default:
			err = fmt.Errorf("unknown directive %q", fields[0])
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *script) declareVar(fields []string) error {
	if len(fields) != 2 {
		return fmt.Errorf("want \"var <name>\"")
	}
	name := fields[1]
	if _, ok := s.vars[name]; ok {
		return fmt.Errorf("variable %q declared twice", name)
	}
	s.vars[name] = &variable{name: name, id: len(s.vars)}
	return nil
}

// declareAtom parses "atom <id> <var> - <var> <= <int>".
func (s *script) declareAtom(fields []string) error {
	if len(fields) != 7 || fields[3] != "-" || fields[5] != "<=" {
		return fmt.Errorf("want \"atom <id> <var> - <var> <= <int>\"")
	}
	id, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return fmt.Errorf("bad atom id %q: %w", fields[1], err)
	}
	return s.finishAtomDecl(id, fields)
}

func (s *script) finishAtomDecl(id int64, fields []string) error {
	lhsVar, err := s.lookupVar(fields[2])
	if err != nil {
		return err
	}
	rhsVar, err := s.lookupVar(fields[4])
	if err != nil {
		return err
	}
	k, err := strconv.ParseInt(fields[6], 10, 64)
	if err != nil {
		return fmt.Errorf("bad bound %q: %w", fields[6], err)
	}
	if _, ok := s.atoms[id]; ok {
		return fmt.Errorf("atom %d declared twice", id)
	}
	a := &atom{
		id:   id,
		lhs:  minusTerm(lhsVar, rhsVar),
		rhs:  constTerm(k),
		text: strings.Join(fields[2:], " "),
	}
	s.atoms[id] = a
	s.order = append(s.order, a)
	return nil
}

func (s *script) lookupVar(name string) (*variable, error) {
	v, ok := s.vars[name]
	if !ok {
		return nil, fmt.Errorf("undeclared variable %q", name)
	}
	return v, nil
}

func (s *script) declareClause(fields []string) error {
	if len(fields) < 2 {
		return fmt.Errorf("want \"clause <signed atom id>...\"")
	}
	lits := make([]int64, 0, len(fields)-1)
	for _, f := range fields[1:] {
		n, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return fmt.Errorf("bad literal %q: %w", f, err)
		}
		if n == 0 {
			return fmt.Errorf("literal 0 is not a valid atom reference")
		}
		id := n
		if id < 0 {
			id = -id
		}
		if _, ok := s.atoms[id]; !ok {
			return fmt.Errorf("clause references undeclared atom %d", id)
		}
		lits = append(lits, n)
	}
	s.clauses = append(s.clauses, lits)
	return nil
}
