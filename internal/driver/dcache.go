package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"estlint/internal/diag"
	"estlint/internal/source"
)

// Поднимать при каждом несовместимом изменении DiskPayload.
const diskCacheSchemaVersion uint16 = 1

// Digest is a SHA-256 value used for cache keys and invalidation.
type Digest = [32]byte

// DiskCache хранит результаты проверки файла на диске. Ключ считается от
// содержимого исходника и дерева вместе: изменение любого из них
// инвалидирует запись. Безопасен для конкурентного доступа.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload stores one file's diagnostics for replay on a cache hit.
// Spans are kept as plain offsets: FileIDs живут только внутри одного
// FileSet и при повторе привязываются заново.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	// Hashes the key was derived from, kept for debugging
	SourceHash Digest
	ASTHash    Digest

	Diagnostics []CachedDiagnostic
}

// CachedDiagnostic is a Diagnostic flattened for serialization.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []CachedNote
	Help     string
	Fixes    []CachedFix
}

// CachedNote mirrors diag.Note without the file binding.
type CachedNote struct {
	Start uint32
	End   uint32
	Msg   string
}

// CachedFix mirrors diag.Fix without the file binding.
type CachedFix struct {
	Title string
	Edits []CachedEdit
}

// CachedEdit mirrors diag.FixEdit without the file binding.
type CachedEdit struct {
	Start   uint32
	End     uint32
	NewText string
}

// OpenDiskCache opens the cache at the standard per-user location:
// $XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheDir(filepath.Join(base, app))
}

// OpenDiskCacheDir открывает кэш в явно заданной директории (cache.dir
// из манифеста). Директория создаётся при необходимости.
func OpenDiskCacheDir(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Подкаталог files оставляет место под другие виды записей рядом.
func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "files", hex.EncodeToString(key[:])+".mp")
}

// Put пишет запись атомарно: сериализованный blob уходит во временный
// файл, затем rename на место.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	blob, err := msgpack.Marshal(payload)
	if err != nil {
		return err
	}

	dest := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), "tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(blob); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}

// Get читает запись по ключу; отсутствие файла — промах, не ошибка.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	blob, err := os.ReadFile(c.pathFor(key)) // #nosec G304 -- путь строится из hex-ключа
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := msgpack.Unmarshal(blob, out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll сбрасывает кэш целиком, пригодится при смене формата.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// Сначала rename: можно сразу наполнять каталог заново.
	tomb := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, tomb); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(tomb)
}

// cacheKey derives the lookup key: H(srcHash || astHash).
func cacheKey(srcHash, astHash Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(srcHash[:])
	_, _ = h.Write(astHash[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// snapshotDiagnostics flattens bag items for caching. Все спаны относятся
// к одному файлу, поэтому FileID не сохраняется.
func snapshotDiagnostics(items []diag.Diagnostic) []CachedDiagnostic {
	out := make([]CachedDiagnostic, 0, len(items))
	for i := range items {
		d := &items[i]
		cached := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Help:     d.Help,
		}
		for _, n := range d.Notes {
			cached.Notes = append(cached.Notes, CachedNote{
				Start: n.Span.Start,
				End:   n.Span.End,
				Msg:   n.Msg,
			})
		}
		for _, fx := range d.Fixes {
			cf := CachedFix{Title: fx.Title}
			for _, edit := range fx.Edits {
				cf.Edits = append(cf.Edits, CachedEdit{
					Start:   edit.Span.Start,
					End:     edit.Span.End,
					NewText: edit.NewText,
				})
			}
			cached.Fixes = append(cached.Fixes, cf)
		}
		out = append(out, cached)
	}
	return out
}

// replayDiagnostics rebinds cached diagnostics to fileID and fills the bag.
func replayDiagnostics(bag *diag.Bag, fileID source.FileID, cached []CachedDiagnostic) {
	for i := range cached {
		c := &cached[i]
		d := diag.Diagnostic{
			Severity: diag.Severity(c.Severity),
			Code:     diag.Code(c.Code),
			Message:  c.Message,
			Primary:  source.Span{File: fileID, Start: c.Start, End: c.End},
			Help:     c.Help,
		}
		for _, n := range c.Notes {
			d.Notes = append(d.Notes, diag.Note{
				Span: source.Span{File: fileID, Start: n.Start, End: n.End},
				Msg:  n.Msg,
			})
		}
		for _, fx := range c.Fixes {
			f := diag.Fix{Title: fx.Title}
			for _, edit := range fx.Edits {
				f.Edits = append(f.Edits, diag.FixEdit{
					Span:    source.Span{File: fileID, Start: edit.Start, End: edit.End},
					NewText: edit.NewText,
				})
			}
			d.Fixes = append(d.Fixes, f)
		}
		if !bag.Add(d) {
			return
		}
	}
}
