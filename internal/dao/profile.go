package dao

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/classic-cipher-go/internal/storage"
)

// Profile is a named, reusable cipher configuration. It stores user
// configuration only; no cipher instance or stream position is persisted.
type Profile struct {
	Name     string `json:"name"`
	Cipher   string `json:"cipher"`
	Key      string `json:"key"`
	Workers  int    `json:"workers"`
	Describe string `json:"describe"`
	Enable   bool   `json:"enable"`
}

// ProfileStore abstracts profile persistence across backends.
type ProfileStore interface {
	Get(name string) (*Profile, bool)
	Set(profile *Profile) error
	Delete(name string) error
	GetAll() ([]*Profile, error)
	Close() error
}

// BoltProfileStore persists profiles in the BoltDB store with a
// read-through cache in front.
type BoltProfileStore struct {
	store *storage.Store
	cache *storage.Cache
}

// NewBoltProfileStore creates a profile store backed by BoltDB
func NewBoltProfileStore(store *storage.Store) *BoltProfileStore {
	return &BoltProfileStore{
		store: store,
		cache: storage.NewCache(10 * time.Minute),
	}
}

// Get retrieves a profile by name
func (d *BoltProfileStore) Get(name string) (*Profile, bool) {
	if cached, ok := d.cache.Get(name); ok {
		return cached.(*Profile), true
	}

	var profile Profile
	if err := d.store.GetJSON(storage.BucketProfiles, name, &profile); err != nil {
		return nil, false
	}
	if profile.Name == "" {
		return nil, false
	}

	d.cache.Set(name, &profile)
	return &profile, true
}

// Set stores a profile
func (d *BoltProfileStore) Set(profile *Profile) error {
	d.cache.Set(profile.Name, profile)
	return d.store.SetJSON(storage.BucketProfiles, profile.Name, profile)
}

// Delete removes a profile
func (d *BoltProfileStore) Delete(name string) error {
	d.cache.Delete(name)
	return d.store.Delete(storage.BucketProfiles, name)
}

// GetAll retrieves all profiles sorted by name
func (d *BoltProfileStore) GetAll() ([]*Profile, error) {
	data, err := d.store.GetAll(storage.BucketProfiles)
	if err != nil {
		return nil, err
	}

	var result []*Profile
	for _, v := range data {
		var profile Profile
		if err := json.Unmarshal(v, &profile); err == nil {
			result = append(result, &profile)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Close is a no-op; the underlying store is owned and closed by the server.
func (d *BoltProfileStore) Close() error {
	return nil
}
