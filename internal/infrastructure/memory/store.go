// Package memory implementa los puertos de persistencia en memoria.
// Se usa con DB_DRIVER=memory en desarrollo y como base de datos de las pruebas.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/jobboard-api/internal/domain/entity"
	"github.com/jhoicas/jobboard-api/internal/domain/repository"
)

// Store guarda todas las tablas bajo un único mutex.
type Store struct {
	mu     sync.RWMutex
	users  map[string]*entity.User
	tokens map[string]*entity.AuthToken
	jobs   map[string]*entity.Job
	apps   map[string]*entity.Application
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:  make(map[string]*entity.User),
		tokens: make(map[string]*entity.AuthToken),
		jobs:   make(map[string]*entity.Job),
		apps:   make(map[string]*entity.Application),
	}
}

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Tokens repositorio de tokens.
func (s *Store) Tokens() *TokenRepo { return &TokenRepo{s: s} }

// Jobs repositorio de ofertas.
func (s *Store) Jobs() *JobRepo { return &JobRepo{s: s, txLock: txLock{mu: &s.mu}} }

// Applications repositorio de postulaciones.
func (s *Store) Applications() *ApplicationRepo {
	return &ApplicationRepo{s: s, txLock: txLock{mu: &s.mu}}
}

// txLock toma el mutex del almacén salvo que la transacción en curso ya lo tenga.
type txLock struct {
	mu   *sync.RWMutex
	held bool
}

func (l txLock) lock() {
	if !l.held {
		l.mu.Lock()
	}
}

func (l txLock) unlock() {
	if !l.held {
		l.mu.Unlock()
	}
}

func (l txLock) rlock() {
	if !l.held {
		l.mu.RLock()
	}
}

func (l txLock) runlock() {
	if !l.held {
		l.mu.RUnlock()
	}
}

// TxRunner ejecuta fn con el almacén bloqueado para escritura; si fn falla, restaura ofertas
// y postulaciones al estado previo. Las demás operaciones esperan a que termine, así la
// restauración nunca pisa escrituras ajenas.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ver TxRunner. fn no debe usar repositorios obtenidos fuera del callback (bloqueo mutuo).
func (r *TxRunner) Run(ctx context.Context, fn func(jobs repository.JobRepository, apps repository.ApplicationRepository) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	jobs := make(map[string]*entity.Job, len(r.s.jobs))
	for k, v := range r.s.jobs {
		jobs[k] = cloneJob(v)
	}
	apps := make(map[string]*entity.Application, len(r.s.apps))
	for k, v := range r.s.apps {
		apps[k] = cloneApplication(v)
	}

	held := txLock{mu: &r.s.mu, held: true}
	if err := fn(&JobRepo{s: r.s, txLock: held}, &ApplicationRepo{s: r.s, txLock: held}); err != nil {
		r.s.jobs = jobs
		r.s.apps = apps
		return err
	}
	return nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

func cloneJob(j *entity.Job) *entity.Job {
	c := *j
	c.Tags = cloneStrings(j.Tags)
	c.Requirements = cloneStrings(j.Requirements)
	c.Benefits = cloneStrings(j.Benefits)
	return &c
}

func cloneApplication(a *entity.Application) *entity.Application {
	c := *a
	return &c
}
