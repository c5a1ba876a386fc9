package miner

import (
	"database/sql"
	"runtime"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/xleven/wxminer/internal/backup"
	"github.com/xleven/wxminer/internal/errors"
	"github.com/xleven/wxminer/pkg/filecopy"
)

// dbManager 以备份内相对路径为键缓存 sqlite 连接
// 备份目录被 iTunes 重写时通过 fsnotify 作废受影响的连接
type dbManager struct {
	backup  *backup.Backup
	watcher *fsnotify.Watcher

	mutex sync.RWMutex
	dbs   map[string]*sql.DB // relativePath -> db
	paths map[string]string  // 磁盘路径 -> relativePath
}

func newDBManager(b *backup.Backup) *dbManager {
	d := &dbManager{
		backup: b,
		dbs:    make(map[string]*sql.DB),
		paths:  make(map[string]string),
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warn().Err(err).Msg("failed to watch backup dir, stale handles possible")
		return d
	}
	if err := watcher.Add(b.Path); err != nil {
		log.Warn().Err(err).Msg("failed to watch backup dir, stale handles possible")
		watcher.Close()
		return d
	}
	d.watcher = watcher
	go d.watch()
	return d
}

// Open 打开相对路径对应的数据库，复用已有连接
func (d *dbManager) Open(relativePath string) (*sql.DB, error) {
	d.mutex.RLock()
	db, ok := d.dbs[relativePath]
	d.mutex.RUnlock()
	if ok {
		return db, nil
	}

	path, err := d.backup.FilePath(relativePath)
	if err != nil {
		return nil, errors.DBFileNotFound(relativePath, err)
	}

	// windows 下 sqlite 文件可能被占用，查询临时拷贝
	openPath := path
	if runtime.GOOS == "windows" {
		openPath, err = filecopy.GetTempCopy("wxminer", path)
		if err != nil {
			return nil, errors.DBConnectFailed(path, err)
		}
	}

	db, err = sql.Open("sqlite3", openPath)
	if err != nil {
		return nil, errors.DBConnectFailed(path, err)
	}

	d.mutex.Lock()
	d.dbs[relativePath] = db
	d.paths[path] = relativePath
	d.mutex.Unlock()
	return db, nil
}

func (d *dbManager) watch() {
	for {
		select {
		case event, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			d.invalidate(event.Name)
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("backup watcher error")
		}
	}
}

func (d *dbManager) invalidate(path string) {
	d.mutex.Lock()
	rel, ok := d.paths[path]
	if !ok {
		d.mutex.Unlock()
		return
	}
	db := d.dbs[rel]
	delete(d.dbs, rel)
	delete(d.paths, path)
	d.mutex.Unlock()

	log.Debug().Str("db", rel).Msg("backup file changed, dropping handle")
	if db != nil {
		// 给在途查询留出收尾时间
		go func(db *sql.DB) {
			time.Sleep(5 * time.Second)
			db.Close()
		}(db)
	}
}

func (d *dbManager) Close() error {
	if d.watcher != nil {
		d.watcher.Close()
	}
	d.mutex.Lock()
	defer d.mutex.Unlock()
	for _, db := range d.dbs {
		db.Close()
	}
	d.dbs = make(map[string]*sql.DB)
	d.paths = make(map[string]string)
	return nil
}
