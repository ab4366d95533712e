package testutils

import (
	"os"
	"testing"

	"github.com/dataveil/dataveil/src/utils"
)

func FatalIfError(t *testing.T, err error) {
	if err != nil {
		t.Fatalf("error: %v", err)
	}
}

// CreateTempDir creates a scratch directory for a test run.
func CreateTempDir() string {
	dir, err := os.MkdirTemp("", "dataveil-test")
	if err != nil {
		utils.ErrExit("failed to create temp dir for testing: %v", err)
	}
	return dir
}

func RemoveTempDir(dir string) {
	err := os.RemoveAll(dir)
	if err != nil {
		utils.ErrExit("failed to remove temp dir: %v", err)
	}
}
