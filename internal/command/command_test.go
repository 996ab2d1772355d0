package command

import (
	"context"
	"testing"

	"github.com/Iron-Ham/composite/internal/errors"
)

// dualCommand implements both executor shapes.
type dualCommand struct {
	syncRuns, asyncRuns int
}

func (d *dualCommand) Execute(any) error {
	d.syncRuns++
	return nil
}

func (d *dualCommand) ExecuteAsync(context.Context, any) error {
	d.asyncRuns++
	return nil
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     Command
		wantErr bool
	}{
		{"relay", NewRelay(nil, nil), false},
		{"async relay", NewAsyncRelay(nil, nil), false},
		{"toggle", NewToggle(false, nil), false},
		{"plain executor", &plainCommand{}, false},
		{"nil", nil, true},
		{"non-comparable", valueCommand{}, true},
		{"slice behind interface field", taggedCommand{tag: []int{1}}, true},
		{"comparable value", taggedCommand{tag: "save"}, false},
		{"not a command", &struct{}{}, true},
		{"string", "save", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cmd)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrInvalidCommand) {
				t.Errorf("Validate() error = %v, want ErrInvalidCommand", err)
			}
		})
	}
}

func TestCanExecuteHelper(t *testing.T) {
	if !CanExecute(&plainCommand{}, nil) {
		t.Error("command without a guard should be executable")
	}
	if CanExecute(NewRelay(nil, func(any) bool { return false }), nil) {
		t.Error("closed guard should be reported")
	}
}

func TestInvoke_PrefersAsync(t *testing.T) {
	d := &dualCommand{}

	if err := Invoke(context.Background(), d, nil); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if d.asyncRuns != 1 || d.syncRuns != 0 {
		t.Errorf("async=%d sync=%d, want async=1 sync=0", d.asyncRuns, d.syncRuns)
	}
}

func TestInvoke_PassesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")

	var seen any
	cmd := NewAsyncRelay(func(ctx context.Context, _ any) error {
		seen = ctx.Value(key{})
		return nil
	}, nil)

	if err := Invoke(ctx, cmd, nil); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if seen != "v" {
		t.Errorf("context value = %v, want v", seen)
	}
}

func TestInvoke_RejectsNonCommand(t *testing.T) {
	if err := Invoke(context.Background(), &struct{}{}, nil); !errors.Is(err, errors.ErrInvalidCommand) {
		t.Errorf("Invoke() error = %v, want ErrInvalidCommand", err)
	}
}
