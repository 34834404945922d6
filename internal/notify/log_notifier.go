package notify

import "go.uber.org/zap"

// LogNotifier writes notifications to a zap logger.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger.Named("notify")}
}

func (l *LogNotifier) Notify(n Notification) {
	fields := []zap.Field{
		zap.String("id", n.ID),
		zap.String("title", n.Title),
		zap.String("message", n.Message),
	}
	switch n.Severity {
	case SeverityError:
		l.logger.Error("notification", fields...)
	case SeverityWarning:
		l.logger.Warn("notification", fields...)
	default:
		l.logger.Info("notification", fields...)
	}
}
