package main

import (
	"context"
	"flag"
	"os"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/conf"
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/usecase"
	"github.com/iWorld-y/credit_viewer/app/viewer/pkg/logger"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name 是服务的名称
	Name string = "credit-viewer"
	// Version 是服务的版本号
	Version string
	// flagconf 是配置文件的路径命令行参数
	flagconf string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "app/viewer/configs/config.yaml", "config path, eg: -conf config.yaml")
}

func newApp(logger log.Logger, hs *http.Server, uc *usecase.ReportUseCase) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(hs),
		// 服务就绪后加载一次报告集合
		kratos.AfterStart(func(ctx context.Context) error {
			uc.Mount(ctx)
			return nil
		}),
	)
}

func main() {
	flag.Parse()

	bc, err := conf.LoadConfig(flagconf)
	if err != nil {
		panic(err)
	}

	if err := logger.InitLogger(bc.Log.Level, bc.Log.File); err != nil {
		panic(err)
	}

	// 初始化日志记录器，包含调用者信息、服务ID等上下文
	kl := log.With(logger.NewKratosLogger(logger.Log),
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)
	log.SetLogger(kl)

	app, cleanup, err := initApp(bc.Server, bc.Backend, bc.Upload, bc.UI, kl)
	if err != nil {
		panic(err)
	}
	defer cleanup()

	if err := app.Run(); err != nil {
		panic(err)
	}
}
