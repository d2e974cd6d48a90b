package messenger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-winbus/config"
	"github.com/dep2p/go-winbus/pkg/interfaces"
)

// ============================================================================
// Fx 模块测试
// ============================================================================

// TestModule_Load 测试 Fx 模块加载
func TestModule_Load(t *testing.T) {
	var agg *Aggregator

	app := fxtest.New(t,
		Module(),
		fx.Populate(&agg),
	)
	app.RequireStart()
	defer app.RequireStop()

	require.NotNil(t, agg)
	got := 0
	_, err := GetEvent[intEvent](agg).Subscribe(func(v int) { got = v })
	require.NoError(t, err)
	require.NoError(t, GetEvent[intEvent](agg).Publish(3))
	assert.Equal(t, 3, got)
}

// TestModule_InjectsCapabilities 测试注入的 Dispatcher 和配置生效
func TestModule_InjectsCapabilities(t *testing.T) {
	ui := &queueDispatcher{}
	cfg := config.NewConfig()
	cfg.Messenger.RouteFaults = false

	var agg *Aggregator
	app := fxtest.New(t,
		fx.Supply(cfg),
		fx.Provide(func() interfaces.Dispatcher { return ui }),
		Module(),
		fx.Populate(&agg),
	)
	app.RequireStart()
	defer app.RequireStop()

	ev := GetEvent[intEvent](agg)
	_, err := ev.Subscribe(func(int) {}, OnThread(UIThread))
	require.NoError(t, err)
	require.NoError(t, ev.Publish(1))
	assert.Equal(t, 1, ui.pending())
	assert.Nil(t, agg.env.route)
}

// TestModule_Provides 测试直接调用 Provide
func TestModule_Provides(t *testing.T) {
	result := ProvideAggregator(Params{})
	require.NotNil(t, result.Aggregator)
	assert.NotNil(t, result.Aggregator.env.route)
	assert.Equal(t, config.DefaultMessengerConfig(), ConfigFromUnified(nil))

	app := fx.New(Module(), fx.NopLogger)
	require.NoError(t, app.Start(context.Background()))
	require.NoError(t, app.Stop(context.Background()))
}
