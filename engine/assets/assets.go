package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/affine/engine/core"
)

var (
	ErrClosed        = errors.New("asset manager already closed")
	ErrUnknownAsset  = errors.New("unknown asset type")
	ErrNoLoader      = errors.New("no loader registered for asset type")
	ErrAssetNotFound = errors.New("asset not tracked")
)

type AssetType uint8

const (
	AssetTypeNone AssetType = iota
	AssetTypeScene
)

type AssetInfo struct {
	Path       string
	Type       AssetType
	LastLoaded time.Time
	// Checksum is the xxhash of the contents last loaded or reported.
	Checksum uint64
}

// AssetManager tracks asset files, loads them through registered loaders
// and reports when a tracked file changes on disk.
type AssetManager struct {
	assets  map[string]AssetInfo
	loaders map[AssetType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	changes  chan string
	errors   chan error
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	am := &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[AssetType]Loader),
		fsnotify: fsWatch,
		// one pending change is enough: the consumer always reloads the
		// latest file contents
		changes: make(chan string, 1),
		errors:  make(chan error, 1),
		done:    make(chan struct{}),
	}
	go am.start()
	return am, nil
}

// RegisterLoader registers the loader used for every asset of assetType.
func (am *AssetManager) RegisterLoader(assetType AssetType, loader Loader) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.loaders[assetType] = loader
}

// Track adds path to the asset index without watching it.
func (am *AssetManager) Track(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	assetType := DetermineAssetType(abs)
	if assetType == AssetTypeNone {
		return "", fmt.Errorf("%w: %s", ErrUnknownAsset, path)
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	if _, exists := am.assets[abs]; !exists {
		am.assets[abs] = AssetInfo{Path: abs, Type: assetType}
	}
	return abs, nil
}

// Watch tracks path and starts watching it for changes. The parent
// directory is watched rather than the file itself, so editors that save
// by replacing the file are still noticed.
func (am *AssetManager) Watch(path string) error {
	if am.closed() {
		return ErrClosed
	}
	abs, err := am.Track(path)
	if err != nil {
		return err
	}
	if err := am.fsnotify.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	core.LogDebug("watching %s", abs)
	return nil
}

// LoadAsset loads a tracked asset with the loader registered for its type.
func (am *AssetManager) LoadAsset(path string) (interface{}, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	am.mutex.RLock()
	asset, exists := am.assets[abs]
	loader, loaderExists := am.loaders[asset.Type]
	am.mutex.RUnlock()
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, path)
	}
	if !loaderExists {
		return nil, fmt.Errorf("%w: %d", ErrNoLoader, asset.Type)
	}

	value, err := loader.Load(abs)
	if err != nil {
		return nil, err
	}

	am.mutex.Lock()
	asset.LastLoaded = time.Now()
	if sum, size, err := checksum(abs); err == nil && size > 0 {
		asset.Checksum = sum
	}
	am.assets[abs] = asset // Update the loaded time
	am.mutex.Unlock()

	return value, nil
}

// Info returns the index entry of a tracked asset.
func (am *AssetManager) Info(path string) (AssetInfo, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return AssetInfo{}, false
	}
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[abs]
	return info, ok
}

// Changes delivers the absolute path of a tracked file that was created
// or written. Bursts of writes collapse into a single notification.
func (am *AssetManager) Changes() <-chan string {
	return am.changes
}

// Errors delivers watcher errors. Errors are dropped while one is pending.
func (am *AssetManager) Errors() <-chan error {
	return am.errors
}

func (am *AssetManager) Close() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	am.mutex.Unlock()

	close(am.done)
	return am.fsnotify.Close()
}

func (am *AssetManager) closed() bool {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return am.isClosed
}

func (am *AssetManager) start() {
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name)
			}

		case e, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(e.Error())
			select {
			case am.errors <- e:
			default:
			}

		case <-am.done:
			return
		}
	}
}

// Handle the creation or modification of a file. Writes that leave the
// contents unchanged (a plain save, a touch) are not reported.
func (am *AssetManager) handleFileEvent(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	sum, size, err := checksum(abs)
	if err != nil || size == 0 {
		// gone again, unreadable or truncated mid save; a later event
		// will report it
		return
	}

	am.mutex.Lock()
	asset, tracked := am.assets[abs]
	unchanged := tracked && asset.Checksum == sum
	if tracked {
		asset.Checksum = sum
		am.assets[abs] = asset
	}
	am.mutex.Unlock()
	if !tracked || unchanged {
		return
	}
	select {
	case am.changes <- abs:
	default:
	}
}

// DetermineAssetType maps a file extension to the asset type it holds.
func DetermineAssetType(path string) AssetType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".yaml", ".yml":
		return AssetTypeScene
	default:
		return AssetTypeNone
	}
}

func checksum(path string) (uint64, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, err
	}
	return xxhash.Sum64(data), len(data), nil
}
