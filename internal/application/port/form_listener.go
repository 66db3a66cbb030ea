package port

import "github.com/bnema/formview/internal/domain/entity"

// FormListener receives the events of one rendered form.
// Methods are invoked from the session dispatcher, never concurrently.
// They may issue session commands but must not wait on FormSession.Flush,
// which fails with bridge.ErrFlushFromDispatcher there.
type FormListener interface {
	// OnSubmissionRetrieved delivers the data requested by FetchSubmission.
	OnSubmissionRetrieved(submission string)
	// OnSubmissionChanged delivers the form data after every change.
	OnSubmissionChanged(submission string)
	// OnValidityChecked follows every OnSubmissionChanged.
	OnValidityChecked(valid bool)
	// OnFieldFocused reports the name of the input that gained focus.
	OnFieldFocused(fieldName string)
}

// RequestListener is implemented by listeners that correlate fetch requests
// with their answers.
type RequestListener interface {
	OnSubmissionRetrievedFor(requestID entity.RequestID, submission string)
}

// LifecycleListener is implemented by listeners interested in document
// load outcome.
type LifecycleListener interface {
	OnReady()
	OnLoadFailed(reason string)
}

// FormListenerFuncs adapts optional functions to every listener interface.
// Nil fields are skipped.
type FormListenerFuncs struct {
	SubmissionRetrieved    func(submission string)
	SubmissionRetrievedFor func(requestID entity.RequestID, submission string)
	SubmissionChanged      func(submission string)
	ValidityChecked        func(valid bool)
	FieldFocused           func(fieldName string)
	Ready                  func()
	LoadFailed             func(reason string)
}

var (
	_ FormListener      = FormListenerFuncs{}
	_ RequestListener   = FormListenerFuncs{}
	_ LifecycleListener = FormListenerFuncs{}
)

func (f FormListenerFuncs) OnSubmissionRetrieved(submission string) {
	if f.SubmissionRetrieved != nil {
		f.SubmissionRetrieved(submission)
	}
}

func (f FormListenerFuncs) OnSubmissionRetrievedFor(requestID entity.RequestID, submission string) {
	if f.SubmissionRetrievedFor != nil {
		f.SubmissionRetrievedFor(requestID, submission)
	}
}

func (f FormListenerFuncs) OnSubmissionChanged(submission string) {
	if f.SubmissionChanged != nil {
		f.SubmissionChanged(submission)
	}
}

func (f FormListenerFuncs) OnValidityChecked(valid bool) {
	if f.ValidityChecked != nil {
		f.ValidityChecked(valid)
	}
}

func (f FormListenerFuncs) OnFieldFocused(fieldName string) {
	if f.FieldFocused != nil {
		f.FieldFocused(fieldName)
	}
}

func (f FormListenerFuncs) OnReady() {
	if f.Ready != nil {
		f.Ready()
	}
}

func (f FormListenerFuncs) OnLoadFailed(reason string) {
	if f.LoadFailed != nil {
		f.LoadFailed(reason)
	}
}
