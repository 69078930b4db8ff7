package helper

// Msg is a user-facing message in English and Bengali.
type Msg struct {
	En string
	Bn string
}

var (
	MsgUnauthorized       = Msg{"Unauthorized: please sign in", "অননুমোদিত: অনুগ্রহ করে লগইন করুন"}
	MsgForbidden          = Msg{"You do not have permission for this action", "এই কাজের অনুমতি আপনার নেই"}
	MsgInvalidPayload     = Msg{"Invalid request payload", "অনুরোধের তথ্য সঠিক নয়"}
	MsgInvalidID          = Msg{"Invalid ID", "আইডি সঠিক নয়"}
	MsgValidation         = Msg{"Validation failed", "যাচাই ব্যর্থ হয়েছে"}
	MsgNotFound           = Msg{"Not found", "পাওয়া যায়নি"}
	MsgTemplateNotFound   = Msg{"Document template not found", "ডকুমেন্ট টেমপ্লেট পাওয়া যায়নি"}
	MsgDocTypeUnknown     = Msg{"Unknown document type", "অজানা ডকুমেন্টের ধরন"}
	MsgInsufficientCredit = Msg{"Insufficient credits", "পর্যাপ্ত ক্রেডিট নেই"}
	MsgConflict           = Msg{"Data already exists", "তথ্যটি ইতিমধ্যে বিদ্যমান"}
	MsgReferenceMissing   = Msg{"Referenced data not found", "সংশ্লিষ্ট তথ্য পাওয়া যায়নি"}
	MsgInternal           = Msg{"Something went wrong, please try again later", "কিছু একটা ভুল হয়েছে, পরে আবার চেষ্টা করুন"}
	MsgServiceUnavailable = Msg{"Database is not configured", "ডাটাবেস সংযুক্ত নেই"}
	MsgTooManyRequests    = Msg{"Too many requests, please try again later", "অনেক বেশি অনুরোধ, কিছুক্ষণ পর চেষ্টা করুন"}
	MsgPaymentDisabled    = Msg{"Online payment is not configured", "অনলাইন পেমেন্ট চালু নেই"}
	MsgStorageDisabled    = Msg{"File storage is not configured", "ফাইল সংরক্ষণ চালু নেই"}
	MsgPaymentGateway     = Msg{"Payment gateway is not responding, please try again", "পেমেন্ট গেটওয়ে সাড়া দিচ্ছে না, আবার চেষ্টা করুন"}
	MsgWrongPasscode      = Msg{"Incorrect meeting passcode", "মিটিংয়ের পাসকোড সঠিক নয়"}
	MsgMeetingClosed      = Msg{"This meeting is no longer open", "এই মিটিংটি আর খোলা নেই"}
)
