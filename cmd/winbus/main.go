// Package main 提供 winbus 命令行入口
//
// 启动全部组件，刷新一次窗口列表并打印，可选应用一个布局，
// 然后等待退出信号。
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	winbus "github.com/dep2p/go-winbus"
	"github.com/dep2p/go-winbus/config"
	"github.com/dep2p/go-winbus/pkg/lib/log"
	"github.com/dep2p/go-winbus/pkg/types"
)

var logger = log.Logger("winbus/cmd")

// ═══════════════════════════════════════════════════════════════════════════
// 命令行参数
// ═══════════════════════════════════════════════════════════════════════════
//
// 配置优先级（从高到低）：命令行参数 > 环境变量（WINBUS_*）> 配置文件 > 默认值
//
// ═══════════════════════════════════════════════════════════════════════════
var (
	configFile  = flag.String("config", "", "配置文件路径")
	dataDir     = flag.String("data-dir", "", "数据目录（默认: ./data）")
	inMemory    = flag.Bool("in-memory", false, "设置只保存在内存中")
	logFile     = flag.String("log", "", "日志文件路径")
	logLevel    = flag.String("log-level", "", "日志级别 (debug/info/warn/error)")
	metricsAddr = flag.String("metrics-addr", "", "/metrics 监听地址，例如 127.0.0.1:9464")
	applyName   = flag.String("apply", "", "启动后应用的布局名称")
	once        = flag.Bool("once", false, "刷新并打印后立即退出")
	verbose     = flag.Bool("verbose", false, "输出依赖注入容器日志")
	showVersion = flag.Bool("version", false, "显示版本信息")
)

const refreshWait = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if *showVersion {
		fmt.Println(winbus.VersionInfo())
		return nil
	}

	cfg, err := buildConfig()
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}

	closer, err := log.Setup(log.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return fmt.Errorf("设置日志失败: %w", err)
	}
	defer func() { _ = closer.Close() }()

	opts := []winbus.Option{winbus.WithConfig(cfg)}
	if *verbose {
		opts = append(opts, winbus.WithVerboseContainer())
	}

	app, err := winbus.New(opts...)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fmt.Printf("📦 %s\n", winbus.VersionInfo())
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("启动失败: %w", err)
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer stopCancel()
		if err := app.Stop(stopCtx); err != nil {
			logger.Warn("停止失败", "error", err)
		}
	}()

	srv := serveMetrics(cfg.Metrics.ListenAddr, app.MetricsHandler())
	if srv != nil {
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	list := app.WindowList()
	if err := list.Refresh(); err != nil {
		logger.Warn("刷新请求的订阅者出错", "error", err)
	}
	deadline := time.NewTimer(refreshWait)
	defer deadline.Stop()
wait:
	for len(list.Windows()) == 0 {
		select {
		case <-list.Changes():
		case <-deadline.C:
			logger.Warn("等待窗口列表超时")
			break wait
		case <-ctx.Done():
			return nil
		}
	}
	printWindows(list.Windows())

	if *applyName != "" {
		result, err := list.Apply(*applyName)
		if err != nil {
			return fmt.Errorf("应用布局失败: %w", err)
		}
		printPlacements(result)
	}

	if *once {
		return nil
	}

	fmt.Println("已启动，按 Ctrl+C 退出")
	<-ctx.Done()
	fmt.Println("\n正在关闭...")
	return nil
}

// buildConfig 按优先级合并配置
func buildConfig() (*config.Config, error) {
	cfg := config.NewConfig()
	if *configFile != "" {
		loaded, err := config.LoadFile(*configFile)
		if err != nil {
			return nil, fmt.Errorf("加载配置文件失败: %w", err)
		}
		cfg = loaded
	}

	applyEnvOverrides(cfg, os.LookupEnv)

	if isFlagSet("data-dir") && *dataDir != "" {
		cfg.Storage.DataDir = *dataDir
	}
	if isFlagSet("in-memory") {
		cfg.Storage.InMemory = *inMemory
	}
	if isFlagSet("log") {
		cfg.Log.File = *logFile
	}
	if isFlagSet("log-level") {
		cfg.Log.Level = *logLevel
	}
	if isFlagSet("metrics-addr") {
		cfg.Metrics.ListenAddr = *metricsAddr
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// serveMetrics 在独立 goroutine 上暴露 /metrics，地址为空时不启动
func serveMetrics(addr string, handler http.Handler) *http.Server {
	if addr == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("指标服务退出", "addr", addr, "error", err)
		}
	}()
	logger.Info("指标服务已启动", "addr", addr)
	return srv
}

// isFlagSet 检查命令行参数是否被显式设置
func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func printWindows(windows []types.Window) {
	fmt.Printf("窗口 (%d):\n", len(windows))
	for _, w := range windows {
		b := w.Bounds
		fmt.Printf("  #%-6d %-20s %-40q %dx%d@%d,%d\n",
			w.Handle, w.ProcessName, w.Title, b.Width, b.Height, b.X, b.Y)
	}
}

func printPlacements(app types.ProfileApplication) {
	fmt.Printf("布局 %s: 移动 %d 个窗口\n", app.Profile.Name, len(app.Placements))
	for _, p := range app.Placements {
		t := p.Target
		fmt.Printf("  #%-6d %-20s → %dx%d@%d,%d\n",
			p.Window.Handle, p.Window.ProcessName, t.Width, t.Height, t.X, t.Y)
	}
}
