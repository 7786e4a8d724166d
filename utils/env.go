package utils

import (
	"os"
	"strconv"
)

// NumThreadsEnvVar is the environment variable that overrides the default number of goroutines
// the planner uses for nearest neighbor searches.
const NumThreadsEnvVar = "RRT_NUM_THREADS"

// GetenvInt returns the integer value of the environment variable v, or def if it is unset or not
// an integer.
func GetenvInt(v string, def int) int {
	x, err := strconv.ParseInt(os.Getenv(v), 10, 64)
	if err != nil {
		return def
	}
	return int(x)
}
