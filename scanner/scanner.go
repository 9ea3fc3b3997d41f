package scanner

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/fansqz/cdp-snapshot-adapter/protocol"
)

// maxConcurrentReads 同时读取的文件数上限
const maxConcurrentReads = 10

// excludedDir 依赖缓存目录，不进脚本列表
const excludedDir = "node_modules"

// Scan 枚举源码根目录，合成虚拟脚本列表
// 被调试进程可能已经不存在，前端需要的脚本列表从文件系统伪造：
// 绝对路径同时作为scriptId和url，行数按换行符个数统计。
// 结果按路径排序，保证事件发送顺序稳定。
func Scan(ctx context.Context, root string) ([]*protocol.ScriptParsedEventBody, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	var paths []string
	err = filepath.WalkDir(absRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if entry.Name() == excludedDir {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	logrus.Infof("[Scanner] found %d source files under %s", len(paths), absRoot)

	scripts := make([]*protocol.ScriptParsedEventBody, len(paths))
	var mutex sync.Mutex
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentReads)
	for index, path := range paths {
		index, path := index, path
		group.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lines, err := countLines(path)
			if err != nil {
				return err
			}
			mutex.Lock()
			defer mutex.Unlock()
			scripts[index] = &protocol.ScriptParsedEventBody{
				ScriptID:  path,
				URL:       path,
				StartLine: 0,
				EndLine:   lines,
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return scripts, nil
}

// countLines 统计文件的行终止符个数
func countLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return bytes.Count(data, []byte{'\n'}), nil
}
