package baseworker

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

type BaseImpl struct {
	WorkerName    string
	firstRunDelay time.Duration
	runInterval   time.Duration
}

func NewInstance(WorkerName string, firstRunDelay, runInterval time.Duration) *BaseImpl {
	return &BaseImpl{
		WorkerName:    WorkerName,
		firstRunDelay: firstRunDelay,
		runInterval:   runInterval,
	}
}

func (i BaseImpl) GetLogger() *log.Entry {
	logger := log.
		WithField("worker_name", i.WorkerName)
	return logger
}

// JobFunc задача цикла. done == true - задача выполнила свою работу, цикл останавливается.
type JobFunc func(ctx context.Context) (done bool)

// Run крутит задачу с интервалом до отмены контекста или до done от задачи
func (i BaseImpl) Run(ctx context.Context, jobFunc JobFunc) {
	logger := i.GetLogger()
	period := i.firstRunDelay
	timer := time.NewTimer(period)
	defer timer.Stop()
	for {
		select {
		// проверяем не завершён ли ещё контекст и выходим, если завершён
		case <-ctx.Done():
			logger.Debug("Задача остановлена")
			return
		case <-timer.C:
			if i.runJob(ctx, jobFunc) {
				logger.Debug("Задача завершила работу")
				return
			}
		}
		timer.Reset(i.runInterval)
	}
}

func (i BaseImpl) runJob(ctx context.Context, jobFunc JobFunc) (done bool) {
	defer func() {
		if r := recover(); r != nil {
			i.GetLogger().
				WithField("panic_stack", string(debug.Stack())).
				Errorf("panic: (%v)", r)
			done = false
		}
	}()
	return jobFunc(ctx)
}

// Handle запущенная задача. Stop можно вызывать сколько угодно раз и из любой горутины.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Start запускает Run в отдельной горутине, остановка через Handle.Stop или отмену ctx
func (i BaseImpl) Start(ctx context.Context, jobFunc JobFunc) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go func() {
		defer close(h.done)
		i.Run(ctx, jobFunc)
	}()
	return h
}

// Stop отменяет задачу и ждёт выхода из цикла
func (h *Handle) Stop() {
	h.once.Do(h.cancel)
	<-h.done
}

// Done закрывается, когда цикл завершён (остановлен или задача сообщила done)
func (h *Handle) Done() <-chan struct{} {
	return h.done
}
