package lockfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/nightlyone/lockfile"
	log "github.com/sirupsen/logrus"

	"github.com/dataveil/dataveil/src/utils"
)

// Lockfile guards the persisted mapping-store document so that only one
// dataveil process mutates it at a time.
type Lockfile struct {
	fpath    string
	cmdName  string
	cmdPID   int
	lockfile lockfile.Lockfile
}

// NewLockfile returns a lock for the given mapping document. The lock file
// lives next to the document as .<name>.lck.
func NewLockfile(mappingFilePath string, cmdName string) *Lockfile {
	dir := filepath.Dir(mappingFilePath)
	base := filepath.Base(mappingFilePath)
	fpath := filepath.Join(dir, fmt.Sprintf(".%s.lck", base))
	return &Lockfile{fpath: fpath, cmdName: cmdName, cmdPID: -1}
}

func (l *Lockfile) GetCmdPID() (int, error) {
	if l.cmdPID != -1 {
		return l.cmdPID, nil
	}

	bytes, err := os.ReadFile(l.fpath)
	if err != nil {
		return -1, fmt.Errorf("failed to read lockfile %q: %w", l.fpath, err)
	}
	l.cmdPID, err = strconv.Atoi(strings.Trim(string(bytes), " \n"))
	if err != nil {
		return -1, fmt.Errorf("failed to parse PID from lockfile %q: %w", l.fpath, err)
	}
	return l.cmdPID, nil
}

func (l *Lockfile) IsPIDActive() bool {
	pid, err := l.GetCmdPID()
	if err != nil {
		return false
	}

	proc, _ := os.FindProcess(pid) // Always succeeds on Unix systems

	// process.Signal(syscall.Signal(0)) returns an error only if the process is not running
	err = proc.Signal(syscall.Signal(0))
	if err != nil {
		log.Infof("process %d is not active", pid)
		return false
	}
	log.Infof("process %d is active", pid)
	return true
}

func (l *Lockfile) Lock() {
	var err error
	absPath, err := filepath.Abs(l.fpath)
	if err != nil {
		utils.ErrExit("Failed to resolve lockfile path %q: %v\n", l.fpath, err)
	}
	l.lockfile, err = lockfile.New(absPath)
	if err != nil {
		utils.ErrExit("Failed to create lockfile %q: %v\n", l.fpath, err)
	}

	err = l.lockfile.TryLock()
	if err == nil {
		return
	} else if err == lockfile.ErrBusy {
		utils.ErrExit("Another instance of dataveil '%s' is using this mapping file", l.cmdName)
	} else {
		utils.ErrExit("Unable to lock the mapping file: %v\n", err)
	}
}

func (l *Lockfile) Unlock() {
	err := l.lockfile.Unlock()
	if err != nil {
		utils.ErrExit("Unable to unlock %q: %v\n", l.lockfile, err)
	}
}
