package storage

import (
	"path"

	"github.com/op/go-logging"
	"github.com/syndtr/goleveldb/leveldb"
	lerrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"
	ldbstorage "github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var log = logging.MustGetLogger("storage")

const StorageName = "korolev"

type ResourceType byte

const TxJournal = ResourceType(0x0)
const PoolMeta = ResourceType(0x1)

type Storage interface {
	Put(rtype ResourceType, key []byte, value []byte) error
	Get(rtype ResourceType, key []byte) (value []byte, err error)
	Contains(rtype ResourceType, key []byte) bool
	Delete(rtype ResourceType, key []byte) error
	Keys(rtype ResourceType, keyPrefix []byte) (keys [][]byte)
	Entries(rtype ResourceType) (keys [][]byte, values [][]byte)
	Stats() *leveldb.DBStats
	Close()
}

type StorageImpl struct {
	db   *leveldb.DB
	path string
}

// NewStorage opens a leveldb database at p, an empty path gives a memory
// backed database for tests and ephemeral runs.
func NewStorage(p string, opts *opt.Options) (Storage, error) {
	var nopts opt.Options
	if opts != nil {
		nopts = *opts
	}

	var err error
	var db *leveldb.DB

	if p == "" {
		db, err = leveldb.Open(ldbstorage.NewMemStorage(), &nopts)
	} else {
		p = path.Join(p, StorageName)
		db, err = leveldb.OpenFile(p, &nopts)
		log.Debugf("Created storage at %v", p)
		if lerrors.IsCorrupted(err) && !nopts.GetReadOnly() {
			db, err = leveldb.RecoverFile(p, &nopts)
		}
	}

	if err != nil {
		return nil, err
	}

	return &StorageImpl{
		db:   db,
		path: p,
	}, nil
}

func typedKey(rtype ResourceType, key []byte) []byte {
	k := make([]byte, 0, len(key)+1)
	k = append(k, byte(rtype))
	return append(k, key...)
}

func (s *StorageImpl) Put(rtype ResourceType, key []byte, value []byte) error {
	return s.db.Put(typedKey(rtype, key), value, &opt.WriteOptions{})
}

func (s *StorageImpl) Get(rtype ResourceType, key []byte) (value []byte, err error) {
	return s.db.Get(typedKey(rtype, key), &opt.ReadOptions{})
}

func (s *StorageImpl) Contains(rtype ResourceType, key []byte) bool {
	b, _ := s.db.Has(typedKey(rtype, key), &opt.ReadOptions{})
	return b
}

func (s *StorageImpl) Delete(rtype ResourceType, key []byte) error {
	return s.db.Delete(typedKey(rtype, key), &opt.WriteOptions{})
}

// Keys returns the keys of the resource type matching keyPrefix, with the
// type prefix stripped, in key order.
func (s *StorageImpl) Keys(rtype ResourceType, keyPrefix []byte) (keys [][]byte) {
	iter := s.db.NewIterator(util.BytesPrefix(typedKey(rtype, keyPrefix)), nil)

	for iter.Next() {
		key := iter.Key()
		keyCopy := make([]byte, len(key)-1)
		copy(keyCopy, key[1:])
		keys = append(keys, keyCopy)
	}

	iter.Release()

	return keys
}

// Entries returns all key/value pairs of the resource type with the type
// prefix stripped from keys, in key order.
func (s *StorageImpl) Entries(rtype ResourceType) (keys [][]byte, values [][]byte) {
	iter := s.db.NewIterator(util.BytesPrefix(typedKey(rtype, nil)), nil)

	for iter.Next() {
		key := iter.Key()
		value := iter.Value()
		keyCopy := make([]byte, len(key)-1)
		copy(keyCopy, key[1:])
		valueCopy := make([]byte, len(value))
		copy(valueCopy, value)
		keys = append(keys, keyCopy)
		values = append(values, valueCopy)
	}

	iter.Release()

	return keys, values
}

func (s *StorageImpl) Stats() *leveldb.DBStats {
	stats := &leveldb.DBStats{}
	if err := s.db.Stats(stats); err != nil {
		log.Error(err)
		return nil
	}
	return stats
}

func (s *StorageImpl) Close() {
	if err := s.db.Close(); err != nil {
		log.Error(err)
	}
}
