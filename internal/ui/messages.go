package ui

// labels are the shell's fixed strings per locale. Only the navigation
// chrome is translated; notification text comes from the view-models and
// the server.
var labels = map[string]map[string]string{
	"en": {
		"brand":        "Event Booker",
		"browse":       "Browse Events",
		"bookings":     "My Bookings",
		"adminEvents":  "Admin: Manage Events",
		"adminUsers":   "Admin: Manage Users",
		"login":        "Log In",
		"register":     "Register",
		"logout":       "Logout",
		"darkOn":       "Dark Mode",
		"darkOff":      "Light Mode",
		"accessDenied": "Access denied",
		"booked":       "Booked",
		"bookNow":      "Book Now",
		"noEvents":     "No events found for this category.",
		"noBookings":   "You haven't booked any events yet.",
		"orphanTitle":  "Event no longer exists",
		"orphanBody":   "The event you booked has been deleted by the admin.",
		"congrats":     "Congratulations!",
		"congratsBody": "You've successfully booked:",
		"backToEvents": "Back to Events",
		"promote":      "Promote",
		"filterByCat":  "Filter by Category",
	},
	"ar": {
		"brand":        "حجز الفعاليات",
		"browse":       "تصفح الفعاليات",
		"bookings":     "حجوزاتي",
		"adminEvents":  "الإدارة: الفعاليات",
		"adminUsers":   "الإدارة: المستخدمون",
		"login":        "تسجيل الدخول",
		"register":     "إنشاء حساب",
		"logout":       "تسجيل الخروج",
		"darkOn":       "الوضع الداكن",
		"darkOff":      "الوضع الفاتح",
		"accessDenied": "الوصول مرفوض",
		"booked":       "محجوز",
		"bookNow":      "احجز الآن",
		"noEvents":     "لا توجد فعاليات لهذه الفئة.",
		"noBookings":   "لم تحجز أي فعالية بعد.",
		"orphanTitle":  "الفعالية لم تعد موجودة",
		"orphanBody":   "الفعالية التي حجزتها حذفها المشرف.",
		"congrats":     "تهانينا!",
		"congratsBody": "لقد حجزت بنجاح:",
		"backToEvents": "العودة إلى الفعاليات",
		"promote":      "ترقية",
		"filterByCat":  "تصفية حسب الفئة",
	},
}

func (s *Shell) tr(key string) string {
	locale := s.store.Locale()
	if m, ok := labels[locale]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return labels["en"][key]
}
