// ============================================================================
// BOOTSTRAP (Compose Root)
// ============================================================================
//
// Точка сборки сервиса LetsGo. Здесь мы:
// 1. Создаем инфраструктуру (хранилище, RabbitMQ, JWT, тексты)
// 2. Собираем выходные адаптеры (WebSocket, Telegram, события)
// 3. Создаем навигаторы устройств (Devices)
// 4. Подключаем входные адаптеры (HTTP, WebSocket, Telegram-бот)
// 5. Запускаем сервер и ждем остановки
//
// Навигатор ничего не знает о каналах: снимки экранов уходят через
// fanout-презентер во все подключенные клиенты.
//
//   HTTP / WS / Telegram → Dispatch → Navigator → Presenter → WS / Telegram
//                                        ↓
//                            KeyValueStore, Scheduler, события
//
// ============================================================================

package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"letsgo/internal/passenger/adapter/in/in_tg"
	"letsgo/internal/passenger/adapter/in/in_ws"
	"letsgo/internal/passenger/adapter/in/transport"
	"letsgo/internal/passenger/adapter/out/fanout"
	"letsgo/internal/passenger/adapter/out/out_amqp"
	"letsgo/internal/passenger/adapter/out/out_tg"
	"letsgo/internal/passenger/adapter/out/out_ws"
	"letsgo/internal/passenger/adapter/out/scheduler"
	"letsgo/internal/passenger/adapter/out/simulated"
	"letsgo/internal/passenger/adapter/out/store"
	"letsgo/internal/passenger/application/ports/out"
	"letsgo/internal/passenger/application/usecase"
	"letsgo/internal/shared/auth"
	"letsgo/internal/shared/config"
	db_conn "letsgo/internal/shared/db"
	"letsgo/internal/shared/i18n"
	"letsgo/internal/shared/logger"
	"letsgo/internal/shared/mq"
	"letsgo/internal/shared/ws"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Run запускает сервис и блокируется до отмены ctx
func Run(ctx context.Context, cfg config.Config, log *logger.Logger) {
	log.Info(logger.Entry{Action: "letsgo_starting", Message: "initializing letsgo service"})

	// ========================================================================
	// СЛОЙ 1: ИНФРАСТРУКТУРА
	// ========================================================================

	msg, err := i18n.New(cfg.App.Language)
	if err != nil {
		log.Fatal(logger.Entry{Action: "i18n_init_failed", Message: err.Error(), Error: logger.Err(err)})
	}

	kv, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal(logger.Entry{Action: "store_open_failed", Message: err.Error(), Error: logger.Err(err)})
	}
	defer closeStore()

	publisher, closePublisher := newPublisher(ctx, cfg.RabbitMQ, log)
	defer closePublisher()

	jwtService := auth.NewJWTService(cfg.JWT)

	// ========================================================================
	// СЛОЙ 2: ПРЕЗЕНТЕРЫ (WebSocket + Telegram)
	// ========================================================================
	// Hub создается до навигаторов: через него работает презентер,
	// а входящие сообщения подключаются позже (in_ws).

	hub := ws.NewHub(in_ws.DeviceAuth(jwtService), log)
	go hub.Run(ctx)

	presenters := []out.Presenter{out_ws.NewWsPresenter(hub, log)}

	var (
		tgBot     *bot.Bot
		tgHandler *in_tg.BotHandler
		tgScreens *out_tg.TgPresenter
	)
	if cfg.Telegram.Enabled {
		tgBot, err = bot.New(cfg.Telegram.Token, bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if tgHandler != nil {
				tgHandler.HandleText(ctx, b, update)
			}
		}))
		if err != nil {
			// без Telegram сервис работает дальше
			log.Error(logger.Entry{Action: "telegram_init_failed", Message: err.Error(), Error: logger.Err(err)})
		} else {
			tgScreens = out_tg.NewTgPresenter(tgBot, log)
			presenters = append(presenters, tgScreens)
		}
	}

	// ========================================================================
	// СЛОЙ 3: USE CASES
	// ========================================================================

	devices := usecase.NewDevices(ctx, usecase.Deps{
		Store:     kv,
		Presenter: fanout.New(presenters...),
		Scheduler: scheduler.NewClock(),
		Data:      simulated.New(uint64(time.Now().UnixNano()), msg),
		Publisher: publisher,
		Messages:  msg,
		Log:       log,
	}, usecase.TimingsFromConfig(cfg.App))
	defer devices.Shutdown()

	// ========================================================================
	// СЛОЙ 4: ВХОДНЫЕ АДАПТЕРЫ
	// ========================================================================

	deviceWS := in_ws.NewDeviceWSHandler(ctx, hub, devices, log)

	if tgBot != nil {
		tgHandler = in_tg.NewBotHandler(devices, tgScreens, msg, log)
		tgHandler.Register(tgBot)
		go func() {
			log.Info(logger.Entry{Action: "telegram_bot_starting", Message: "long polling"})
			tgBot.Start(ctx)
		}()
	}

	httpHandler := transport.NewHTTPHandler(devices, jwtService, log)
	router := transport.NewRouter(httpHandler, jwtService, deviceWS.ServeWS, log)

	// ========================================================================
	// СЛОЙ 5: HTTP СЕРВЕР
	// ========================================================================

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info(logger.Entry{Action: "http_server_starting", Message: fmt.Sprintf("listening on %s", addr)})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(logger.Entry{Action: "http_server_failed", Message: err.Error(), Error: logger.Err(err)})
		}
	}()

	<-ctx.Done()
	log.Info(logger.Entry{Action: "letsgo_stopping", Message: "shutting down letsgo service"})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(logger.Entry{Action: "http_server_shutdown_failed", Message: err.Error(), Error: logger.Err(err)})
	} else {
		log.Info(logger.Entry{Action: "http_server_stopped", Message: "http server stopped gracefully"})
	}

	log.Info(logger.Entry{Action: "letsgo_stopped", Message: "letsgo service stopped"})
}

// openStore выбирает хранилище устройств по store.backend
func openStore(ctx context.Context, cfg config.Config, log *logger.Logger) (out.KeyValueStore, func(), error) {
	switch cfg.Store.Backend {
	case "badger":
		s, err := store.OpenBadger(cfg.Store.Dir, cfg.Store.InMemory, log)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {
			if err := s.Close(); err != nil {
				log.Error(logger.Entry{Action: "badger_close_failed", Message: err.Error(), Error: logger.Err(err)})
			}
		}, nil

	case "postgres":
		pool, err := db_conn.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return nil, nil, err
		}
		if err := db_conn.Migrate(ctx, pool, log); err != nil {
			db_conn.Close(pool, log)
			return nil, nil, err
		}
		return store.NewPgStore(pool), func() { db_conn.Close(pool, log) }, nil

	default:
		log.Warn(logger.Entry{Action: "store_in_memory", Message: "device state is not persisted between restarts"})
		return store.NewMemoryStore(), func() {}, nil
	}
}

// newPublisher: RabbitMQ, если включен; иначе события только пишутся в лог.
// Недоступный брокер не мешает запуску.
func newPublisher(ctx context.Context, cfg config.MQConfig, log *logger.Logger) (out.EventPublisher, func()) {
	if !cfg.Enabled {
		return out_amqp.NewLogPublisher(log), func() {}
	}

	mqConn, err := mq.NewRabbitMQ(ctx, cfg, log)
	if err != nil {
		log.Error(logger.Entry{Action: "rabbitmq_connection_failed", Message: err.Error(), Error: logger.Err(err)})
		return out_amqp.NewLogPublisher(log), func() {}
	}
	if err := mq.SetupTopology(ctx, mqConn, cfg.Exchange, mq.DefaultBindings, log); err != nil {
		log.Error(logger.Entry{Action: "rabbitmq_topology_setup_failed", Message: err.Error(), Error: logger.Err(err)})
	}
	return out_amqp.NewAppEventPublisher(mqConn, cfg.Exchange, log), mqConn.Close
}
