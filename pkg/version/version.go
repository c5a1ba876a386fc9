package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	Version   = "(dev)"
	buildInfo = debug.BuildInfo{}
)

func init() {
	if bi, ok := debug.ReadBuildInfo(); ok {
		buildInfo = *bi
		if len(bi.Main.Version) > 0 {
			Version = bi.Main.Version
		}
	}
}

// GetMore 返回版本信息，mod 为 true 时附带完整的模块依赖清单
func GetMore(mod bool) string {
	if mod {
		info := buildInfo.String()
		if len(info) > 0 {
			return fmt.Sprintf("\t%s\n", strings.ReplaceAll(info[:len(info)-1], "\n", "\n\t"))
		}
	}
	return fmt.Sprintf("version %s %s %s/%s\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
