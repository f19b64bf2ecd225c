package effect

// Parameters contains the configurable defaults of EventEffects.
type Parameters struct {
	// ConsumeImmediately selects the consume-immediately policy instead of consume-after.
	ConsumeImmediately bool `default:"false" usage:"consume events before their handler runs"`

	// StaleConsumptionGuard skips the consumption callback if the slot was replaced while the handler was running.
	StaleConsumptionGuard bool `default:"false" usage:"skip consumption of events that were replaced while being handled"`
}

// ParamsEffect contains the configuration of the EventEffects.
var ParamsEffect = &Parameters{}
