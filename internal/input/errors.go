// Package input collects interactive answers for a pipeline run.
package input

import "fmt"

// UserInputError reports a required answer that was left empty.
type UserInputError struct {
	Key   string
	Label string
}

func (e *UserInputError) Error() string {
	return fmt.Sprintf("no %s provided", e.Key)
}
