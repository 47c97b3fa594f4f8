package court

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed scenario.yaml
var defaultScenario []byte

// Scenario defines the tasks, opening messages and message pool of a court session.
type Scenario struct {
	Tasks          []TaskSpec       `yaml:"tasks"`
	TriggerOnStart []TaskKey        `yaml:"trigger_on_start"`
	Welcome        []WelcomeMessage `yaml:"welcome"`
	Messages       []Message        `yaml:"messages"`
}

// TaskSpec describes a task before a session starts tracking it.
type TaskSpec struct {
	Key       TaskKey `yaml:"key"`
	Label     string  `yaml:"label"`
	LawOnFail string  `yaml:"law_on_fail"`
	// Penalty is the COURT message suffix used when LawOnFail is empty.
	Penalty string `yaml:"penalty"`
	Summons string `yaml:"summons"`
}

// WelcomeMessage is pushed to the feed when a session starts.
type WelcomeMessage struct {
	Source Source `yaml:"source"`
	Text   string `yaml:"text"`
}

// Message is a candidate for the message generator. A message that names a
// task starts that task's deadline clock.
type Message struct {
	Text string  `yaml:"text"`
	Task TaskKey `yaml:"task,omitempty"`
}

// DefaultScenario returns the built-in four task scenario.
func DefaultScenario() Scenario {
	sc, err := ParseScenario(defaultScenario)
	if err != nil {
		panic(fmt.Sprintf("embedded scenario: %v", err))
	}
	return sc
}

// ParseScenario decodes and validates a YAML scenario document.
func ParseScenario(data []byte) (Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// Validate checks that keys are unique and every reference names a known task.
func (sc Scenario) Validate() error {
	if len(sc.Tasks) == 0 {
		return fmt.Errorf("%w: no tasks", ErrInvalidScenario)
	}
	known := make(map[TaskKey]bool, len(sc.Tasks))
	for _, spec := range sc.Tasks {
		if spec.Key == "" || spec.Label == "" {
			return fmt.Errorf("%w: task needs key and label", ErrInvalidScenario)
		}
		if known[spec.Key] {
			return fmt.Errorf("%w: duplicate task %q", ErrInvalidScenario, spec.Key)
		}
		known[spec.Key] = true
	}
	for _, key := range sc.TriggerOnStart {
		if !known[key] {
			return fmt.Errorf("%w: trigger_on_start references %q", ErrInvalidScenario, key)
		}
	}
	if len(sc.Messages) == 0 {
		return fmt.Errorf("%w: empty message pool", ErrInvalidScenario)
	}
	for _, msg := range sc.Messages {
		if msg.Task != "" && !known[msg.Task] {
			return fmt.Errorf("%w: message %q references %q", ErrInvalidScenario, msg.Text, msg.Task)
		}
	}
	return nil
}
