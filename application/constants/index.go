package constants

// response codes
// 4 digit codes the client apps key UI flows off of
var SESSION_EXPIRED uint = 4410          // session no longer exists. start a new verification attempt
var SESSION_ALREADY_TERMINAL uint = 4420 // session already completed or failed
var LIVENESS_FRAMES_MISSING uint = 4430  // resubmit secure verification with video frames

var SUPPORTED_DOCUMENT_TYPES = []string{"passport", "national_id", "drivers_licence", "voters_card"}

// DEFAULT_LOCATION_RADIUS_KM is used when the governing workflow
// configuration does not set its own radius.
var DEFAULT_LOCATION_RADIUS_KM = 1.0

var SUPPORT_EMAIL = "help@verifid.io"
