package chat

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tektai/ar-viewer/internal/models"
	"github.com/tektai/ar-viewer/internal/transform"
)

// Texts shown in the transcript.
const (
	IntroText       = "Olá, eu sou a assistente Tektai! Fale comigo para manipular o objeto."
	UnreachableText = "Não foi possível acessar o serviço de comandos."
	GenericErrText  = "Algo deu errado. Por favor, tente novamente."
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrBusy         = errors.New("a message is already being interpreted")
	ErrClosed       = errors.New("chat pipeline is closed")
)

// Interpreter turns free text into a reply and transform actions.
type Interpreter interface {
	Interpret(ctx context.Context, message string) (*models.CommandResponse, error)
}

// ActionSink receives non-empty action lists.
type ActionSink interface {
	ApplyChatActions(ctx context.Context, actions []transform.Action) error
}

// Role identifies the author of a transcript message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one transcript entry.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	IsError   bool      `json:"is_error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Result describes one submission.
type Result struct {
	User    Message           `json:"user"`
	Reply   *Message          `json:"reply,omitempty"`
	Actions transform.Actions `json:"actions"`
}

// Pipeline forwards chat text to an Interpreter and applies the returned
// actions. One submission may be in flight at a time. In-flight requests
// are aborted when the pipeline is closed.
type Pipeline struct {
	interpreter Interpreter
	sink        ActionSink
	logger      *zap.Logger
	now         func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	sending atomic.Bool

	mu         sync.RWMutex
	transcript []Message
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the pipeline logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithClock overrides the message timestamp source.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// NewPipeline creates a pipeline whose transcript starts with the intro message.
func NewPipeline(interpreter Interpreter, sink ActionSink, opts ...Option) *Pipeline {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pipeline{
		interpreter: interpreter,
		sink:        sink,
		logger:      zap.NewNop(),
		now:         time.Now,
		ctx:         ctx,
		cancel:      cancel,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.transcript = []Message{{
		ID:        "intro",
		Role:      RoleAssistant,
		Text:      IntroText,
		CreatedAt: p.now(),
	}}
	return p
}

// Submit sends message to the interpreter and applies the returned actions.
// Interpretation failures are recorded in the transcript as error replies and
// do not produce an error; state is left untouched in that case.
func (p *Pipeline) Submit(ctx context.Context, message string) (Result, error) {
	text := strings.TrimSpace(message)
	if text == "" {
		return Result{}, ErrEmptyMessage
	}
	if p.ctx.Err() != nil {
		return Result{}, ErrClosed
	}
	if !p.sending.CompareAndSwap(false, true) {
		return Result{}, ErrBusy
	}
	defer p.sending.Store(false)

	result := Result{User: p.append(RoleUser, text, false), Actions: transform.Actions{}}

	// Values such as the trace span come from ctx; cancellation follows the session.
	callCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	defer cancel()
	stop := context.AfterFunc(p.ctx, cancel)
	defer stop()

	resp, err := p.interpreter.Interpret(callCtx, text)
	if err != nil {
		if p.ctx.Err() != nil {
			return result, ErrClosed
		}
		p.logger.Warn("command interpretation failed", zap.Error(err))
		reply := p.append(RoleAssistant, errorText(err), true)
		result.Reply = &reply
		return result, nil
	}

	if resp.Reply != "" {
		reply := p.append(RoleAssistant, resp.Reply, false)
		result.Reply = &reply
	}
	if len(resp.Actions) == 0 {
		return result, nil
	}

	if err := p.sink.ApplyChatActions(callCtx, resp.Actions); err != nil {
		return result, err
	}
	result.Actions = resp.Actions
	p.logger.Debug("chat actions applied", zap.Int("count", len(resp.Actions)))
	return result, nil
}

// errorText maps an interpretation failure to the text shown to the user.
func errorText(err error) string {
	var cmdErr *models.CommandError
	if errors.As(err, &cmdErr) {
		if cmdErr.Status == http.StatusBadRequest && cmdErr.Reply != "" {
			return cmdErr.Reply
		}
		return UnreachableText
	}
	return GenericErrText
}

func (p *Pipeline) append(role Role, text string, isError bool) Message {
	msg := Message{
		ID:        string(role) + "-" + uuid.NewString(),
		Role:      role,
		Text:      text,
		IsError:   isError,
		CreatedAt: p.now(),
	}
	p.mu.Lock()
	p.transcript = append(p.transcript, msg)
	p.mu.Unlock()
	return msg
}

// Transcript returns a copy of all messages in order.
func (p *Pipeline) Transcript() []Message {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Message, len(p.transcript))
	copy(out, p.transcript)
	return out
}

// Sending reports whether a submission is in flight.
func (p *Pipeline) Sending() bool {
	return p.sending.Load()
}

// Close aborts any in-flight request. Later submissions fail with ErrClosed.
func (p *Pipeline) Close() {
	p.cancel()
}
