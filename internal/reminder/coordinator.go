// Package reminder traduce fechas de vencimiento (recurrencias de cuidado y
// predicciones de ciclo) en intents de notificación idempotentes, y los
// mantiene en sync cuando los registros cambian.
package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"animal-care-tracker/internal/domain/animals"
	"animal-care-tracker/internal/domain/care"
	"animal-care-tracker/internal/domain/cycles"
	"animal-care-tracker/internal/platform/logger"
	"animal-care-tracker/internal/platform/metrics"
	"animal-care-tracker/internal/ports/notify"
)

// Kind identifica la clase de recordatorio; es el primer segmento del
// identificador determinístico.
type Kind string

const (
	KindCycle   Kind = "physiological"
	KindCheckup Kind = "checkup"
	KindVaccine Kind = "vaccine"
)

// leadDays es la anticipación fija del recordatorio respecto al
// vencimiento. Política de producto, no configurable por registro.
const leadDays = 1

// Identifier computa el identificador determinístico de un recordatorio:
// "<kind>-<animal>-<epoch>". Mismo evento lógico ⇒ mismo identificador ⇒
// re-agendar es overwrite, no duplicado.
func Identifier(kind Kind, animalName string, target time.Time) string {
	return fmt.Sprintf("%s-%s-%d", kind, animalName, target.Unix())
}

// Outcome es el resultado sincrónico de una operación de sync. Los fallos
// del notifier son asíncronos y solo se loguean: nunca bloquean ni hacen
// fallar la mutación de datos que disparó el sync.
type Outcome string

const (
	OutcomeScheduled Outcome = "scheduled"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeNone      Outcome = "none"
)

type liveReminder struct {
	identifier string
	animalID   string
}

// job agrupa la cancelación del identificador viejo con el agendado del
// nuevo, en ese orden, para que nunca convivan los dos recordatorios.
type job struct {
	cancelID string
	schedule *notify.Request
}

type Coordinator struct {
	notifier notify.Notifier
	log      logger.Logger
	now      func() time.Time

	mu   sync.Mutex
	live map[string]liveReminder // clave lógica -> recordatorio vivo

	jobs      chan job
	wg        sync.WaitGroup
	closeOnce sync.Once
}

func NewCoordinator(n notify.Notifier, log logger.Logger) *Coordinator {
	c := &Coordinator{
		notifier: n,
		log:      log,
		now:      time.Now,
		live:     make(map[string]liveReminder),
		jobs:     make(chan job, 256),
	}
	c.wg.Add(1)
	go c.run()
	return c
}

// Close drena la cola y para el worker.
func (c *Coordinator) Close() {
	c.closeOnce.Do(func() {
		close(c.jobs)
	})
	c.wg.Wait()
}

func (c *Coordinator) run() {
	defer c.wg.Done()
	ctx := context.Background()
	for j := range c.jobs {
		if j.cancelID != "" {
			if err := c.notifier.Cancel(ctx, j.cancelID); err != nil {
				metrics.RemindersFailed.Inc()
				c.log.Warn("reminder cancel failed", map[string]any{"id": j.cancelID, "err": err.Error()})
			} else {
				metrics.RemindersCancelled.Inc()
			}
		}
		if j.schedule != nil {
			if err := c.notifier.Schedule(ctx, *j.schedule); err != nil {
				metrics.RemindersFailed.Inc()
				c.log.Warn("reminder schedule failed", map[string]any{"id": j.schedule.ID, "err": err.Error()})
			} else {
				metrics.RemindersScheduled.Inc()
			}
		}
	}
}

// enqueue nunca bloquea: si la cola está llena se descarta el intent con
// un warning. El próximo sync sobre el mismo registro lo reintenta.
func (c *Coordinator) enqueue(j job) {
	select {
	case c.jobs <- j:
	default:
		metrics.RemindersFailed.Inc()
		c.log.Warn("reminder queue full, dropping intent", nil)
	}
}

func careKey(recordID string) string  { return "care|" + recordID }
func cycleKey(animalID string) string { return "cycle|" + animalID }

// SyncCareRecord recalcula el recordatorio de un registro de cuidado tras
// un add/update. Solo checkups y vacunas notifican; medication y grooming
// llevan recurrencia pero no recordatorio.
func (c *Coordinator) SyncCareRecord(a animals.Animal, rec care.Record) Outcome {
	kind, category, title, body := careNotification(a.Name, rec)
	if kind == "" {
		return c.cancelKey(careKey(rec.ID))
	}

	due := care.NextDue(rec)
	if due == nil {
		return c.cancelKey(careKey(rec.ID))
	}

	meta := map[string]string{
		"animalId":   a.ID,
		"animalName": a.Name,
		"recordId":   rec.ID,
	}
	return c.sync(careKey(rec.ID), kind, a, *due, category, title, body, meta)
}

// RemoveCareRecord cancela el recordatorio vivo de un registro borrado.
func (c *Coordinator) RemoveCareRecord(recordID string) Outcome {
	return c.cancelKey(careKey(recordID))
}

// SyncCyclePrediction recalcula el recordatorio de próximo ciclo del
// animal a partir de su historial. Si no hay predicción posible, cancela
// el que hubiera.
func (c *Coordinator) SyncCyclePrediction(a animals.Animal, history []cycles.Cycle) Outcome {
	predicted, err := cycles.PredictNext(history, c.now())
	if err != nil {
		return c.cancelKey(cycleKey(a.ID))
	}

	title := fmt.Sprintf("%s's cycle forecast", a.Name)
	body := "A new cycle may start tomorrow. Good moment to get ready."
	meta := map[string]string{
		"animalId":      a.ID,
		"animalName":    a.Name,
		"predictedDate": fmt.Sprintf("%d", predicted.Unix()),
	}
	return c.sync(cycleKey(a.ID), KindCycle, a, predicted, "PHYSIOLOGICAL", title, body, meta)
}

// CancelForAnimal cancela todos los recordatorios vivos del animal
// (cascade delete). Devuelve cuántos canceló.
func (c *Coordinator) CancelForAnimal(animalID string) int {
	c.mu.Lock()
	var ids []string
	for key, lr := range c.live {
		if lr.animalID == animalID {
			ids = append(ids, lr.identifier)
			delete(c.live, key)
		}
	}
	c.mu.Unlock()

	for _, id := range ids {
		c.enqueue(job{cancelID: id})
	}
	return len(ids)
}

// HandleDelivered procesa el evento de entrega/tap que reenvía el servicio
// de notificaciones: el recordatorio deja de estar vivo. Devuelve false si
// el identificador no estaba registrado.
func (c *Coordinator) HandleDelivered(identifier string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, lr := range c.live {
		if lr.identifier == identifier {
			delete(c.live, key)
			return true
		}
	}
	return false
}

// Reset cancela todo lo pendiente en el servicio de notificaciones y
// olvida el estado local. Sincrónico: es una operación administrativa.
func (c *Coordinator) Reset(ctx context.Context) error {
	c.mu.Lock()
	c.live = make(map[string]liveReminder)
	c.mu.Unlock()
	return c.notifier.CancelAll(ctx)
}

// LiveCount expone cuántos recordatorios vivos hay (observabilidad y tests).
func (c *Coordinator) LiveCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.live)
}

func (c *Coordinator) sync(key string, kind Kind, a animals.Animal, target time.Time, category, title, body string, meta map[string]string) Outcome {
	id := Identifier(kind, a.Name, target)
	fireAt := target.AddDate(0, 0, -leadDays)

	c.mu.Lock()
	prev, had := c.live[key]

	if !fireAt.After(c.now()) {
		// Vencimiento irresoluble (ya pasó tras restar la anticipación):
		// no se agenda, pero el recordatorio viejo tampoco debe quedar vivo.
		delete(c.live, key)
		c.mu.Unlock()
		if had {
			c.enqueue(job{cancelID: prev.identifier})
		}
		metrics.RemindersSkipped.Inc()
		c.log.Info("reminder skipped", map[string]any{"id": id, "fireAt": fireAt})
		return OutcomeSkipped
	}

	c.live[key] = liveReminder{identifier: id, animalID: a.ID}
	c.mu.Unlock()

	// Cancelar el identificador viejo antes de agendar el nuevo; si el
	// identificador no cambió, agendar de nuevo ya es un overwrite.
	var cancelID string
	if had && prev.identifier != id {
		cancelID = prev.identifier
	}
	c.enqueue(job{
		cancelID: cancelID,
		schedule: &notify.Request{
			ID:       id,
			FireAt:   fireAt,
			Title:    title,
			Body:     body,
			Category: category,
			Metadata: meta,
		},
	})
	return OutcomeScheduled
}

// cancelKey apaga el recordatorio vivo de una clave lógica, si lo hay.
func (c *Coordinator) cancelKey(key string) Outcome {
	c.mu.Lock()
	prev, had := c.live[key]
	delete(c.live, key)
	c.mu.Unlock()

	if !had {
		return OutcomeNone
	}
	c.enqueue(job{cancelID: prev.identifier})
	return OutcomeCancelled
}

// careNotification resuelve kind/categoría/textos según el tipo de
// registro. kind vacío = ese tipo no genera recordatorios.
func careNotification(animalName string, rec care.Record) (Kind, string, string, string) {
	switch rec.Kind {
	case care.KindCheckup:
		return KindCheckup, "CHECKUP",
			fmt.Sprintf("%s's health checkup", animalName),
			fmt.Sprintf("Tomorrow is %s's health checkup.", animalName)
	case care.KindVaccine:
		return KindVaccine, "VACCINE",
			fmt.Sprintf("%s's vaccination", animalName),
			fmt.Sprintf("Tomorrow is %s's %s shot.", animalName, rec.Label)
	default:
		return "", "", "", ""
	}
}
