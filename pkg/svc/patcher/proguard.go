package patcher

// ProguardFile is the shrinker rules file referenced by the patched build script.
const ProguardFile = "android/app/proguard-rules.pro"

const proguardRules = `# Flutter embedding
-keep class io.flutter.** { *; }
-keep class io.flutter.app.** { *; }
-keep class io.flutter.plugin.** { *; }
-keep class io.flutter.util.** { *; }
-keep class io.flutter.view.** { *; }
-keep class io.flutter.embedding.** { *; }
-keep class io.flutter.plugins.** { *; }

# Push notifications
-keep class com.onesignal.** { *; }
-dontwarn com.onesignal.**

# Deferred components are not used
-dontwarn com.google.android.play.core.splitcompat.**
-dontwarn com.google.android.play.core.splitinstall.**
-dontwarn com.google.android.play.core.tasks.**

# Kotlin metadata
-keepattributes *Annotation*, Signature, InnerClasses, EnclosingMethod
-dontwarn kotlin.**
`

// ProguardRules returns the content of proguard-rules.pro.
func ProguardRules() []byte {
	return []byte(proguardRules)
}
