package ocr

// Assess classifies an OCR response into a quality tier. The table below is
// evaluated top to bottom and the first match wins. The thresholds encode the
// product's tolerance for OCR noise and must not be reordered.
func Assess(resp *RawResponse) Assessment {
	if resp == nil || resp.Error != "" {
		message := "no response from OCR service"
		if resp != nil && resp.Error != "" {
			message = resp.Error
		}
		return Assessment{Status: StatusError, Progress: 0, Message: message}
	}

	if len(resp.Fields) == 0 || resp.Confidence.Overall < 0.5 {
		return Assessment{Status: StatusError, Progress: 20, Message: "recognition produced no usable fields"}
	}

	if resp.Success {
		return Assessment{Status: StatusRecognized, Progress: 90, Message: "invoice recognized"}
	}

	score := resp.Validation.CompletenessScore
	confidence := resp.Confidence.Overall
	switch {
	case score >= 70 && confidence >= 0.9:
		return Assessment{Status: StatusRecognized, Progress: 80, Message: "invoice recognized"}
	case score >= 50 && confidence >= 0.8:
		return Assessment{Status: StatusRecognized, Progress: 70, Message: "invoice recognized, some fields may need review"}
	case score >= 30 && confidence >= 0.6:
		return Assessment{Status: StatusRecognized, Progress: 60, Message: "partial recognition, please review the fields"}
	}

	return Assessment{Status: StatusError, Progress: 30, Message: "recognition quality too low"}
}
