package bolt

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.etcd.io/bbolt"

	"github.com/jortega/aquagest/internal/domain"
	"github.com/jortega/aquagest/internal/domain/repository"
)

// Versión de esquema vigente. Se estampa en la migración explícita del
// arranque; una versión mayor en disco significa un archivo de una versión
// más nueva de la aplicación.
const schemaVersion uint64 = 1

var (
	bucketMeta        = []byte("meta")
	bucketCredentials = []byte("credentials")
	bucketUserIndex   = []byte("credentials_by_email")
	keySchemaVersion  = []byte("schema_version")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config opciones de apertura del almacén local.
type Config struct {
	Path string // ruta del archivo bbolt
}

// DB envuelve el archivo bbolt y reparte Stores ligados a un usuario.
type DB struct {
	db *bbolt.DB
}

// Open abre (o crea) el archivo del almacén local.
func Open(cfg Config) (*DB, error) {
	db, err := bbolt.Open(cfg.Path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, &domain.StorageError{Op: "open", Err: err}
	}
	return &DB{db: db}, nil
}

// Close cierra el archivo.
func (d *DB) Close() error {
	return d.db.Close()
}

// Migrate crea los buckets globales y estampa la versión de esquema.
// Debe ejecutarse una vez al arranque, antes de cualquier operación.
func (d *DB) Migrate() error {
	err := d.db.Update(func(tx *bbolt.Tx) error {
		meta, err := tx.CreateBucketIfNotExists(bucketMeta)
		if err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(bucketCredentials); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(bucketUserIndex); err != nil {
			return err
		}
		if raw := meta.Get(keySchemaVersion); raw != nil {
			if stored := btoi(raw); stored > schemaVersion {
				return fmt.Errorf("esquema %d más nuevo que el soportado %d", stored, schemaVersion)
			}
		}
		return meta.Put(keySchemaVersion, itob(schemaVersion))
	})
	if err != nil {
		return &domain.StorageError{Op: "migrate", Err: err}
	}
	return nil
}

// ForUser devuelve el Store ligado al espacio de nombres de userID y crea,
// enumerándolas completas, las tablas de ese usuario si aún no existen.
// Con userID vacío devuelve domain.ErrNoUserBound.
func (d *DB) ForUser(userID string) (repository.Store, error) {
	if userID == "" {
		return nil, domain.ErrNoUserBound
	}
	root := userBucketName(userID)
	err := d.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(root)
		if err != nil {
			return err
		}
		for _, table := range repository.Tables {
			if _, err := b.CreateBucketIfNotExists([]byte(table)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, &domain.StorageError{Op: "bind", Err: err}
	}
	return &Store{db: d.db, user: root}, nil
}

func userBucketName(userID string) []byte {
	return []byte("user:" + userID)
}

// Store agrupa las tablas de un usuario. Implementa repository.Store;
// los accesores por tabla están en table.go.
type Store struct {
	db   *bbolt.DB
	user []byte
}
