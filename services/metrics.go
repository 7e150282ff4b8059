package services

// Recorder receives domain events worth counting. config.Metrics implements
// it with prometheus collectors.
type Recorder interface {
	AppointmentCreated()
	FeedbackModerated(status string)
	LowStockItems(n int)
}

// NopRecorder discards every event.
type NopRecorder struct{}

func (NopRecorder) AppointmentCreated()      {}
func (NopRecorder) FeedbackModerated(string) {}
func (NopRecorder) LowStockItems(int)        {}
