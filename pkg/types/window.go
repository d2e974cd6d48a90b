package types

import "fmt"

// Rect 窗口矩形（屏幕坐标）
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty 宽或高不为正
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// String 返回 "WxH+X+Y" 形式
func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// Window 顶层窗口快照
//
// Handle 是平台窗口句柄的不透明表示，仅用于相等性比较。
type Window struct {
	Handle      uint64 `json:"handle"`
	ProcessName string `json:"process_name"`
	Title       string `json:"title"`
	Bounds      Rect   `json:"bounds"`
}

// Placement 一次窗口移动计划
type Placement struct {
	Window Window `json:"window"`
	Target Rect   `json:"target"`
}
