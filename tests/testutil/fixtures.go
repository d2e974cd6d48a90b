package testutil

import (
	"time"

	"github.com/dep2p/go-winbus/pkg/types"
)

// SampleWindows 返回一组固定的窗口清单
func SampleWindows() []types.Window {
	return []types.Window{
		{Handle: 1, ProcessName: "code.exe", Title: "main.go - winbus", Bounds: types.Rect{X: 0, Y: 0, Width: 800, Height: 600}},
		{Handle: 2, ProcessName: "chrome.exe", Title: "Docs - Chrome", Bounds: types.Rect{X: 100, Y: 100, Width: 1024, Height: 768}},
		{Handle: 3, ProcessName: "term.exe", Title: "shell", Bounds: types.Rect{X: 0, Y: 600, Width: 800, Height: 300}},
	}
}

// SampleSettings 返回包含两个布局方案的设置
//
// "coding" 会移动 code.exe，"browsing" 会移动 chrome.exe。
func SampleSettings() types.Settings {
	return types.Settings{
		Profiles: []types.WindowProfile{
			{Name: "coding", ProcessName: "code.exe", Bounds: types.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}},
			{Name: "browsing", TitlePattern: "* - Chrome", Bounds: types.Rect{X: 960, Y: 0, Width: 960, Height: 1080}},
		},
		RefreshInterval: time.Minute,
	}
}
