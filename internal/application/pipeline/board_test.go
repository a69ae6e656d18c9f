package pipeline_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apppipeline "github.com/jhoicas/Embudos-api/internal/application/pipeline"
	"github.com/jhoicas/Embudos-api/internal/domain"
	"github.com/jhoicas/Embudos-api/internal/domain/entity"
	domainpipeline "github.com/jhoicas/Embudos-api/internal/domain/pipeline"
)

// fakeStore registra las escrituras y permite inyectar fallos o bloquear
// la llamada para simular una transición en vuelo.
type fakeStore struct {
	mu      sync.Mutex
	calls   int
	failErr error
	entered chan struct{} // si no es nil, se cierra al entrar la primera escritura
	block   chan struct{} // si no es nil, la escritura espera a que se cierre
}

func (s *fakeStore) UpdateStage(id string, stageID int, stageName string) error {
	s.mu.Lock()
	s.calls++
	if s.calls == 1 && s.entered != nil {
		close(s.entered)
	}
	block := s.block
	err := s.failErr
	s.mu.Unlock()
	if block != nil {
		<-block
	}
	return err
}

func (s *fakeStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func prospectoEnEtapa(stageID int, stageName string) *entity.Prospect {
	return &entity.Prospect{ID: "p1", FunnelID: "f1", StageID: stageID, StageName: stageName}
}

// Transición exitosa: el prospecto queda en la etapa destino.
func TestBoard_TransicionExitosa(t *testing.T) {
	store := &fakeStore{}
	board := apppipeline.NewBoard(store)
	p := prospectoEnEtapa(1, "Nuevo")

	err := board.Transition(p, domainpipeline.Target{StageID: 2, StageName: "Contactado"})
	require.NoError(t, err)
	assert.Equal(t, 2, p.StageID)
	assert.Equal(t, "Contactado", p.StageName)
	assert.Equal(t, 1, store.callCount())
}

// Si la persistencia falla, el prospecto vuelve exactamente al valor previo
// a la transición (rollback del snapshot, no valor re-derivado).
func TestBoard_RollbackSiFallaPersistencia(t *testing.T) {
	store := &fakeStore{failErr: errors.New("conexión perdida")}
	board := apppipeline.NewBoard(store)
	p := prospectoEnEtapa(2, "Contactado")

	err := board.Transition(p, domainpipeline.Target{StageID: 3, StageName: "Ganado"})
	require.Error(t, err)
	assert.Equal(t, 2, p.StageID, "debe restaurarse la etapa previa")
	assert.Equal(t, "Contactado", p.StageName)
}

// Una segunda transición mientras hay otra en vuelo se suprime: no escribe
// en el store y devuelve ErrTransitionInFlight (no se encola).
func TestBoard_SuprimeTransicionConcurrente(t *testing.T) {
	store := &fakeStore{entered: make(chan struct{}), block: make(chan struct{})}
	board := apppipeline.NewBoard(store)
	p := prospectoEnEtapa(1, "Nuevo")

	done := make(chan error, 1)
	go func() {
		done <- board.Transition(p, domainpipeline.Target{StageID: 2, StageName: "Contactado"})
	}()

	// Esperar a que la primera transición esté dentro del store
	<-store.entered

	err := board.Transition(p, domainpipeline.Target{StageID: 3, StageName: "Ganado"})
	assert.ErrorIs(t, err, domain.ErrTransitionInFlight)
	assert.Equal(t, 1, store.callCount(), "la transición suprimida no debe escribir")

	close(store.block)
	require.NoError(t, <-done)
	assert.Equal(t, 2, p.StageID)

	// Liberado el vuelo, una nueva transición vuelve a aceptarse
	store.block = nil
	require.NoError(t, board.Transition(p, domainpipeline.Target{StageID: 3, StageName: "Ganado"}))
	assert.Equal(t, 3, p.StageID)
}
