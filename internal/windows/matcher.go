package windows

import (
	"fmt"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dep2p/go-winbus/pkg/types"
)

// regexPrefix 以此开头的标题模式按正则表达式处理，否则按 glob
const regexPrefix = "re:"

// DefaultPatternCacheSize 模式缓存默认容量
const DefaultPatternCacheSize = 128

// Matcher 布局规则与窗口的匹配器
//
// 编译后的标题模式缓存在 LRU 中，并发安全。
type Matcher struct {
	cache *lru.Cache[string, *regexp.Regexp]
}

// NewMatcher 创建匹配器
func NewMatcher(cacheSize int) (*Matcher, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultPatternCacheSize
	}
	cache, err := lru.New[string, *regexp.Regexp](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Matcher{cache: cache}, nil
}

// Match 窗口是否符合规则
//
// 进程名不区分大小写；空进程名或空标题模式匹配任意值。
func (m *Matcher) Match(p types.WindowProfile, w types.Window) (bool, error) {
	if p.ProcessName != "" && !strings.EqualFold(p.ProcessName, w.ProcessName) {
		return false, nil
	}
	if p.TitlePattern == "" {
		return true, nil
	}

	re, err := m.compile(p.TitlePattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(w.Title), nil
}

// Plan 计算规则对应的窗口移动计划
//
// 已经位于目标位置的窗口不会出现在结果中。
func (m *Matcher) Plan(p types.WindowProfile, windows []types.Window) ([]types.Placement, error) {
	var out []types.Placement
	for _, w := range windows {
		ok, err := m.Match(p, w)
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", p.Name, err)
		}
		if ok && w.Bounds != p.Bounds {
			out = append(out, types.Placement{Window: w, Target: p.Bounds})
		}
	}
	return out, nil
}

// CacheLen 当前缓存的模式数
func (m *Matcher) CacheLen() int {
	return m.cache.Len()
}

// compile 编译标题模式，命中缓存时直接返回
func (m *Matcher) compile(pattern string) (*regexp.Regexp, error) {
	if re, ok := m.cache.Get(pattern); ok {
		return re, nil
	}

	var expr string
	if raw, ok := strings.CutPrefix(pattern, regexPrefix); ok {
		expr = raw
	} else {
		expr = globToRegexp(pattern)
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid title pattern %q: %w", pattern, err)
	}
	m.cache.Add(pattern, re)
	return re, nil
}

// globToRegexp 把 glob 转为不区分大小写的整串匹配正则
func globToRegexp(glob string) string {
	var b strings.Builder
	b.WriteString("(?i)^")
	for _, r := range glob {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return b.String()
}
