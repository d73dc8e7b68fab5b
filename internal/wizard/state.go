package wizard

// Step names the wizard screen a visitor is on.
type Step string

const (
	StepPhone Step = "phone"
	StepCode  Step = "code"
	StepName  Step = "name"
)

// State is one of PhoneState, CodeState or NameState. Each variant only
// carries the fields that are meaningful on its screen.
type State interface {
	Step() Step
}

// PhoneState collects the phone number.
type PhoneState struct {
	Input string
	Error string
}

// CodeState collects the code sent to Phone.
type CodeState struct {
	Phone string
	Input string
	Error string
}

// NameState collects the display name for a verified Phone.
type NameState struct {
	Phone string
	Input string
	Error string
}

func (PhoneState) Step() Step { return StepPhone }
func (CodeState) Step() Step  { return StepCode }
func (NameState) Step() Step  { return StepName }

// View is a flat snapshot of the wizard for templates and the JSON API.
type View struct {
	Open       bool   `json:"open"`
	Step       Step   `json:"step"`
	Phone      string `json:"phone"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Error      string `json:"error,omitempty"`
	Submitting bool   `json:"submitting"`
}

func viewOf(open, submitting bool, s State) View {
	v := View{Open: open, Submitting: submitting, Step: s.Step()}
	switch st := s.(type) {
	case PhoneState:
		v.Phone, v.Error = st.Input, st.Error
	case CodeState:
		v.Phone, v.Code, v.Error = st.Phone, st.Input, st.Error
	case NameState:
		v.Phone, v.Name, v.Error = st.Phone, st.Input, st.Error
	}
	return v
}
