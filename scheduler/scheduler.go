// scheduler/scheduler.go
package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Notifier ส่งอีเมลหนึ่งฉบับ (transport + fallback อยู่ฝั่ง implementation)
type Notifier interface {
	Send(to, subject, body string) error
}

// Scheduler รวม periodic jobs สองตัว: expiration sweeper กับ notification dispatcher
// ใช้ cron ตัวเดียว และกันรอบซ้อนกันด้วย SkipIfStillRunning (ไม่ queue งานค้าง)
type Scheduler struct {
	Sweeper    *ExpirationSweeper
	Dispatcher *NotificationDispatcher

	cron *cron.Cron
}

func New(sweeper *ExpirationSweeper, dispatcher *NotificationDispatcher) *Scheduler {
	return &Scheduler{Sweeper: sweeper, Dispatcher: dispatcher}
}

// Start ลงทะเบียน jobs แล้วเริ่ม cron (non-blocking)
// sweepSpec เช่น "0 2 * * *" (ตีสองทุกวัน), dispatchSpec ปกติ "@hourly"
func (s *Scheduler) Start(sweepSpec, dispatchSpec string) error {
	logger := cron.VerbosePrintfLogger(log.Default())
	s.cron = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(logger),
		cron.Recover(logger),
	))

	if _, err := s.cron.AddFunc(sweepSpec, func() {
		if n, err := s.Sweeper.SweepOnce(time.Now()); err != nil {
			log.Printf("expiration sweep failed: %v", err)
		} else if n > 0 {
			log.Printf("expiration sweep cancelled %d booking(s)", n)
		}
	}); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc(dispatchSpec, func() {
		if err := s.Dispatcher.RunOnce(time.Now()); err != nil {
			log.Printf("notification dispatch failed: %v", err)
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop รอ job ที่ค้างอยู่จบก่อนคืน
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}
