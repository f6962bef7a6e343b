// technology.go - Closed set of tags a command can carry

package models

import (
	"fmt"
	"strings"
)

// Technology classifies a Command. Values outside the set are rejected.
type Technology string

const (
	TechnologyJava    Technology = "JAVA"
	TechnologyPython  Technology = "PYTHON"
	TechnologyBash    Technology = "BASH"
	TechnologySQL     Technology = "SQL"
	TechnologyGit     Technology = "GIT"
	TechnologyDocker  Technology = "DOCKER"
	TechnologyCommand Technology = "COMMAND"
	TechnologyText    Technology = "TEXT"
)

var technologies = []Technology{
	TechnologyJava,
	TechnologyPython,
	TechnologyBash,
	TechnologySQL,
	TechnologyGit,
	TechnologyDocker,
	TechnologyCommand,
	TechnologyText,
}

// Technologies returns every allowed value in declaration order.
func Technologies() []Technology {
	out := make([]Technology, len(technologies))
	copy(out, technologies)
	return out
}

// Valid reports whether t is a member of the set.
func (t Technology) Valid() bool {
	for _, v := range technologies {
		if v == t {
			return true
		}
	}
	return false
}

// ParseTechnology trims and upper-cases s before matching it against the set.
func ParseTechnology(s string) (Technology, error) {
	t := Technology(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", &InvalidTechnologyError{Value: s}
	}
	return t, nil
}

// InvalidTechnologyError carries the rejected input.
type InvalidTechnologyError struct {
	Value string
}

func (e *InvalidTechnologyError) Error() string {
	names := make([]string, len(technologies))
	for i, t := range technologies {
		names[i] = string(t)
	}
	return fmt.Sprintf("invalid technology value '%s'. Allowed values: [%s]", e.Value, strings.Join(names, ", "))
}
