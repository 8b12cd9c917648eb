package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	leveldbIterator "github.com/syndtr/goleveldb/leveldb/iterator"
	leveldbOpt "github.com/syndtr/goleveldb/leveldb/opt"
	leveldbStorage "github.com/syndtr/goleveldb/leveldb/storage"
	leveldbUtil "github.com/syndtr/goleveldb/leveldb/util"

	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/errors"
)

// LevelDBCore is satisfied by both `*leveldb.DB` and `*leveldb.Transaction`.
type LevelDBCore interface {
	Has([]byte, *leveldbOpt.ReadOptions) (bool, error)
	Get([]byte, *leveldbOpt.ReadOptions) ([]byte, error)
	NewIterator(*leveldbUtil.Range, *leveldbOpt.ReadOptions) leveldbIterator.Iterator
	Put([]byte, []byte, *leveldbOpt.WriteOptions) error
	Delete([]byte, *leveldbOpt.WriteOptions) error
}

type LevelDBBackend struct {
	DB *leveldb.DB

	Core LevelDBCore
}

func setLevelDBCoreError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*errors.Error); ok {
		return err
	}

	return errors.NewError(
		errors.StorageCoreError.Code,
		fmt.Sprintf("%s: %s", errors.StorageCoreError.Message, err.Error()),
	)
}

func NewLevelDBBackend(config *Config) (st *LevelDBBackend, err error) {
	st = &LevelDBBackend{}
	if err = st.Init(config); err != nil {
		return nil, err
	}

	return
}

func (st *LevelDBBackend) Init(config *Config) (err error) {
	var db *leveldb.DB

	switch config.Scheme {
	case "file":
		db, err = leveldb.OpenFile(config.Path, nil)
	case "memory":
		db, err = leveldb.Open(leveldbStorage.NewMemStorage(), nil)
	default:
		return errors.StorageConfigInvalid.Clone().SetData("scheme", config.Scheme)
	}
	if err != nil {
		return setLevelDBCoreError(err)
	}

	st.DB = db
	st.Core = db

	return
}

func (st *LevelDBBackend) Close() error {
	return st.DB.Close()
}

func (st *LevelDBBackend) IsTransaction() bool {
	_, ok := st.Core.(*leveldb.Transaction)
	return ok
}

// OpenTransaction returns a new backend which writes into a leveldb
// transaction; nothing is visible to the others until `Commit`.
func (st *LevelDBBackend) OpenTransaction() (*LevelDBBackend, error) {
	if st.IsTransaction() {
		return nil, setLevelDBCoreError(errors.New("this is already *leveldb.Transaction"))
	}

	transaction, err := st.DB.OpenTransaction()
	if err != nil {
		return nil, setLevelDBCoreError(err)
	}

	return &LevelDBBackend{
		DB:   st.DB,
		Core: transaction,
	}, nil
}

func (st *LevelDBBackend) Discard() error {
	ts, ok := st.Core.(*leveldb.Transaction)
	if !ok {
		return errors.StorageTransactionNotOpened
	}

	ts.Discard()
	return nil
}

func (st *LevelDBBackend) Commit() error {
	ts, ok := st.Core.(*leveldb.Transaction)
	if !ok {
		return errors.StorageTransactionNotOpened
	}

	return setLevelDBCoreError(ts.Commit())
}

func (st *LevelDBBackend) makeKey(key string) []byte {
	return []byte(key)
}

func (st *LevelDBBackend) Has(k string) (bool, error) {
	ok, err := st.Core.Has(st.makeKey(k), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return false, nil
		}
		return false, setLevelDBCoreError(err)
	}

	return ok, nil
}

func (st *LevelDBBackend) GetRaw(k string) (b []byte, err error) {
	b, err = st.Core.Get(st.makeKey(k), nil)
	if err == leveldb.ErrNotFound {
		err = errors.StorageRecordDoesNotExist
		return
	}
	err = setLevelDBCoreError(err)

	return
}

func (st *LevelDBBackend) Get(k string, i interface{}) (err error) {
	var b []byte
	if b, err = st.GetRaw(k); err != nil {
		return
	}

	if err = json.Unmarshal(b, i); err != nil {
		err = setLevelDBCoreError(err)
		return
	}

	return
}

func (st *LevelDBBackend) encode(v interface{}) (encoded []byte, err error) {
	if serializable, ok := v.(common.Serializable); ok {
		encoded, err = serializable.Serialize()
	} else {
		encoded, err = common.EncodeJSONValue(v)
	}
	err = setLevelDBCoreError(err)
	return
}

// New stores a new record; an existing key is refused with
// `errors.StorageRecordAlreadyExists`.
func (st *LevelDBBackend) New(k string, v interface{}) (err error) {
	var encoded []byte
	if encoded, err = st.encode(v); err != nil {
		return
	}

	var exists bool
	if exists, err = st.Has(k); err != nil {
		return
	} else if exists {
		return errors.StorageRecordAlreadyExists
	}

	return setLevelDBCoreError(st.Core.Put(st.makeKey(k), encoded, nil))
}

// Set overwrites an existing record.
func (st *LevelDBBackend) Set(k string, v interface{}) (err error) {
	var encoded []byte
	if encoded, err = st.encode(v); err != nil {
		return
	}

	var exists bool
	if exists, err = st.Has(k); err != nil {
		return
	} else if !exists {
		return errors.StorageRecordDoesNotExist
	}

	return setLevelDBCoreError(st.Core.Put(st.makeKey(k), encoded, nil))
}

// Put stores the record whether or not it exists.
func (st *LevelDBBackend) Put(k string, v interface{}) (err error) {
	var encoded []byte
	if encoded, err = st.encode(v); err != nil {
		return
	}

	return setLevelDBCoreError(st.Core.Put(st.makeKey(k), encoded, nil))
}

func (st *LevelDBBackend) Remove(k string) (err error) {
	var exists bool
	if exists, err = st.Has(k); err != nil {
		return
	} else if !exists {
		return errors.StorageRecordDoesNotExist
	}

	return setLevelDBCoreError(st.Core.Delete(st.makeKey(k), nil))
}

// GetIterator walks the records under `prefix` in key order. The cursor,
// when set, is a full key and is excluded from the result.
func (st *LevelDBBackend) GetIterator(prefix string, option ListOptions) (func() (IterItem, bool), func()) {
	var reverse = false
	var cursor []byte
	var limit uint64 = 0
	if option != nil {
		reverse = option.Reverse()
		cursor = option.Cursor()
		limit = option.Limit()
	}

	var dbRange *leveldbUtil.Range
	if len(prefix) > 0 {
		dbRange = leveldbUtil.BytesPrefix(st.makeKey(prefix))
	}

	iter := st.Core.NewIterator(dbRange, nil)

	var started, released bool
	release := func() {
		if !released {
			released = true
			iter.Release()
		}
	}

	move := func() bool {
		if started {
			if reverse {
				return iter.Prev()
			}
			return iter.Next()
		}
		started = true

		if len(cursor) < 1 {
			if reverse {
				return iter.Last()
			}
			return iter.First()
		}

		if reverse {
			if iter.Seek(cursor) {
				return iter.Prev()
			}
			return iter.Last()
		}

		if !iter.Seek(cursor) {
			return false
		}
		if bytes.Equal(iter.Key(), cursor) {
			return iter.Next()
		}
		return true
	}

	var n uint64
	return func() (IterItem, bool) {
		if released || (limit > 0 && n >= limit) || !move() {
			release()
			return IterItem{}, false
		}

		n++
		return IterItem{
			N:     n,
			Key:   append([]byte{}, iter.Key()...),
			Value: append([]byte{}, iter.Value()...),
		}, true
	}, release
}
