// hdfsfile converges a path in a Hadoop-compatible filesystem to a declared
// state: file, directory, absent or touch, with owner, group, mode and
// replication.
package main

import (
	"errors"
	"os"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// errExit is returned by RunE functions that already reported their failure.
var errExit = errors.New("exit")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
