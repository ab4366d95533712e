package mask

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/davecgh/go-spew/spew"
	log "github.com/sirupsen/logrus"

	"github.com/dataveil/dataveil/src/config"
	"github.com/dataveil/dataveil/src/errs"
	"github.com/dataveil/dataveil/src/utils"
	"github.com/dataveil/dataveil/src/utils/jsonfile"
)

// MappingDocument is the persisted shape of the store: an object keyed by
// column name, each value mapping original-value strings to token strings.
// It round-trips exactly through save/load and is the sole unit of state
// whose loss makes masked data unrecoverable.
type MappingDocument map[string]map[string]string

// MappingStore owns the per-column bidirectional original<->token tables.
// The reverse index is derived, rebuilt on every load/insert and never
// persisted. All access goes through one RWMutex: masking's
// check-then-insert must not interleave with itself (single-writer
// discipline; cross-process exclusion is the lockfile package's job).
type MappingStore struct {
	mu      sync.RWMutex
	forward MappingDocument
	reverse MappingDocument
}

// NewMappingStore returns a store in the Empty state.
func NewMappingStore() *MappingStore {
	return &MappingStore{
		forward: make(MappingDocument),
		reverse: make(MappingDocument),
	}
}

// LoadMappingStore reads a mapping document from disk. A missing file yields
// an Empty store (a fresh session). A present but unparsable document is a
// MalformedStoreError and produces no store at all.
func LoadMappingStore(filePath string) (*MappingStore, error) {
	if !utils.FileOrFolderExists(filePath) {
		log.Infof("mapping file %q does not exist, starting with an empty store", filePath)
		return NewMappingStore(), nil
	}

	doc, err := jsonfile.NewJsonFile[MappingDocument](filePath).Read()
	if err != nil {
		return nil, errs.NewMalformedStoreError(filePath, err)
	}

	store := NewMappingStore()
	if err := store.replaceDocument(*doc); err != nil {
		return nil, errs.NewMalformedStoreError(filePath, err)
	}
	log.Infof("loaded mapping store from %q: %d columns, %d entries",
		filePath, len(store.Columns()), store.TotalEntries())
	if config.IsLogLevelDebugOrBelow() {
		log.Debugf("parsed mapping document: %v", spew.Sdump(doc))
	}
	return store, nil
}

// ParseMappingDocument builds a store from raw document bytes, e.g. a
// document produced by a different session/process.
func ParseMappingDocument(bs []byte) (*MappingStore, error) {
	var doc MappingDocument
	if err := json.Unmarshal(bs, &doc); err != nil {
		return nil, errs.NewMalformedStoreError("(inline document)", fmt.Errorf("unmarshal json: %w", err))
	}
	store := NewMappingStore()
	if err := store.replaceDocument(doc); err != nil {
		return nil, errs.NewMalformedStoreError("(inline document)", err)
	}
	return store, nil
}

// replaceDocument installs a freshly loaded document, recomputing the
// reverse index and validating bijectivity column by column.
func (s *MappingStore) replaceDocument(doc MappingDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	forward := make(MappingDocument, len(doc))
	reverse := make(MappingDocument, len(doc))
	for columnName, columnMapping := range doc {
		forward[columnName] = make(map[string]string, len(columnMapping))
		reverse[columnName] = make(map[string]string, len(columnMapping))
		for original, token := range columnMapping {
			if existing, ok := reverse[columnName][token]; ok && existing != original {
				return fmt.Errorf("column %q maps both %q and %q to token %q", columnName, existing, original, token)
			}
			forward[columnName][original] = token
			reverse[columnName][token] = original
		}
	}
	s.forward = forward
	s.reverse = reverse
	return nil
}

// Save persists the store as an indented JSON document.
func (s *MappingStore) Save(filePath string) error {
	s.mu.RLock()
	doc := s.copyForwardLocked()
	s.mu.RUnlock()

	err := jsonfile.NewJsonFile[MappingDocument](filePath).Write(&doc)
	if err != nil {
		return fmt.Errorf("save mapping store: %w", err)
	}
	log.Infof("stored mapping document at %q", filePath)
	return nil
}

// MarshalDocument renders the current document, e.g. for on-demand export.
func (s *MappingStore) MarshalDocument() ([]byte, error) {
	s.mu.RLock()
	doc := s.copyForwardLocked()
	s.mu.RUnlock()

	bs, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal mapping document: %w", err)
	}
	return bs, nil
}

func (s *MappingStore) copyForwardLocked() MappingDocument {
	doc := make(MappingDocument, len(s.forward))
	for columnName, columnMapping := range s.forward {
		doc[columnName] = make(map[string]string, len(columnMapping))
		for original, token := range columnMapping {
			doc[columnName][original] = token
		}
	}
	return doc
}

// Token returns the token for an original value, if present.
func (s *MappingStore) Token(columnName string, original string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	token, ok := s.forward[columnName][original]
	return token, ok
}

// Original is the reverse lookup used by unmasking.
func (s *MappingStore) Original(columnName string, token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	original, ok := s.reverse[columnName][token]
	return original, ok
}

// Put inserts a forward and reverse entry. Inserting the same pair twice is
// a no-op; mapping a new original to an already used token is a
// TokenCollisionError and leaves the store untouched.
func (s *MappingStore) Put(columnName string, original string, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existingToken, ok := s.forward[columnName][original]; ok {
		if existingToken == token {
			return nil
		}
		return fmt.Errorf("original %q in column %q already has token %q", original, columnName, existingToken)
	}
	if existingOriginal, ok := s.reverse[columnName][token]; ok {
		return errs.NewTokenCollisionError(columnName, token, existingOriginal, original)
	}

	if s.forward[columnName] == nil {
		s.forward[columnName] = make(map[string]string)
		s.reverse[columnName] = make(map[string]string)
	}
	s.forward[columnName][original] = token
	s.reverse[columnName][token] = original
	return nil
}

func (s *MappingStore) HasColumn(columnName string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.forward[columnName]) > 0
}

// Columns returns the mapped column names, sorted for stable output.
func (s *MappingStore) Columns() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.forward))
	for name := range s.forward {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ColumnMapping returns a copy of one column's forward table.
func (s *MappingStore) ColumnMapping(columnName string) map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	mapping := make(map[string]string, len(s.forward[columnName]))
	for original, token := range s.forward[columnName] {
		mapping[original] = token
	}
	return mapping
}

func (s *MappingStore) EntryCount(columnName string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.forward[columnName])
}

func (s *MappingStore) TotalEntries() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, columnMapping := range s.forward {
		total += len(columnMapping)
	}
	return total
}

// IsEmpty reports the Empty lifecycle state: no columns mapped yet.
func (s *MappingStore) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.forward) == 0
}
