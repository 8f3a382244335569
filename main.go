package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/afumu/chatwrapped/internal/insight"
	"github.com/afumu/chatwrapped/internal/nlp"
	"github.com/afumu/chatwrapped/store"
	"github.com/afumu/chatwrapped/web"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// --- 加载配置 ---
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// 文件不存在, 尝试创建默认配置
			if err := viper.SafeWriteConfig(); err != nil {
				log.Warn().Err(err).Msg("无法创建默认 .env 文件")
			} else {
				log.Info().Msg("已自动创建并初始化 .env 配置文件")
			}
		} else {
			log.Warn().Err(err).Msg("读取 .env 文件出错, 将使用默认值或环境变量")
		}
	}

	// --- 配置 ---
	// workDir 是包含标准化消息库的目录。
	workDir := viper.GetString("WORK_DIR")
	if workDir == "" {
		workDir = "data"
	}

	// 端口配置: 优先使用 LISTEN_ADDR, 其次使用 PORT, 最后默认 127.0.0.1:5300
	listenAddr := viper.GetString("LISTEN_ADDR")
	port := viper.GetString("PORT")
	if listenAddr == "" {
		if port != "" {
			listenAddr = "127.0.0.1:" + port
		} else {
			listenAddr = "127.0.0.1:5300"
		}
	}

	log.Info().Str("work_dir", workDir).Msg("使用工作目录")

	// 确保工作目录存在
	if err := os.MkdirAll(workDir, 0755); err != nil {
		log.Fatal().Err(err).Msg("创建工作目录失败")
	}

	// --- 初始化 Store ---
	newStore, err := store.NewStore(workDir)
	if err != nil {
		log.Fatal().Err(err).Msg("初始化 store 失败")
	}
	defer newStore.Close()
	log.Info().Msg("Store 初始化成功。")

	// --- 初始化引擎 ---
	// embedding 能力可选: 未配置 API Key 时氛围分类回退为 Neutral。
	var embedder nlp.Embedder
	if key := viper.GetString("EMBEDDING_API_KEY"); key != "" {
		embedder = nlp.NewOpenAIEmbedder(
			key,
			viper.GetString("EMBEDDING_BASE_URL"),
			viper.GetString("EMBEDDING_MODEL"),
		)
	} else {
		log.Info().Msg("未配置 embedding 能力, 氛围分类将使用默认值")
	}
	engine := insight.New(nlp.NewVaderScorer(), nlp.NewProseTagger(), embedder)

	// --- 初始化 Web 服务 ---
	webService := web.NewService(newStore, engine, &web.Config{
		ListenAddr: listenAddr,
		DataDir:    workDir,
	})

	// --- 启动服务 ---
	if err := webService.Start(); err != nil {
		log.Fatal().Err(err).Msg("启动 web 服务失败")
	}
	log.Info().Str("addr", "http://"+listenAddr).Msg("服务已启动")

	// --- 等待中断信号以实现优雅关闭 ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("收到退出信号, 正在关闭...")

	if err := webService.Stop(); err != nil {
		log.Error().Err(err).Msg("关闭 web 服务失败")
	}
}
